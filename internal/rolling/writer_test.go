package rolling

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/rollclean/internal/calendar"
	"github.com/raoulx24/rollclean/internal/pattern"
	"github.com/raoulx24/rollclean/internal/retention"
)

var start = time.Date(2024, time.March, 10, 10, 0, 0, 0, time.UTC)

type recordingCleaner struct {
	calls []time.Time
}

func (c *recordingCleaner) Clean(_ context.Context, now time.Time) retention.Result {
	c.calls = append(c.calls, now)
	return retention.Result{}
}

type rolloverCounter map[string]int

func (r rolloverCounter) Rollover(target string) { r[target]++ }

func daily(t *testing.T, dir string) (*pattern.FileNamePattern, *calendar.RollingCalendar) {
	t.Helper()
	p, err := pattern.Parse(filepath.ToSlash(dir) + "/archive/app-%d{yyyy-MM-dd, UTC}.log")
	require.NoError(t, err)
	cal, err := calendar.New(p)
	require.NoError(t, err)
	return p, cal
}

func read(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestWriter_WritesToRenderedPath(t *testing.T) {
	dir := t.TempDir()
	p, cal := daily(t, dir)
	clk := testclock.NewClock(start)
	cleaner := &recordingCleaner{}
	counter := rolloverCounter{}

	w, err := New(Options{
		Name:     "app",
		Pattern:  p,
		Calendar: cal,
		Cleaner:  cleaner,
		Clock:    clk,
		Recorder: counter,
	})
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write([]byte("one\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "archive", "app-2024-03-10.log"), filepath.FromSlash(w.Path()))

	clk.Advance(14 * time.Hour)
	_, err = w.Write([]byte("two\n"))
	require.NoError(t, err)

	assert.Equal(t, "one\n", read(t, filepath.Join(dir, "archive", "app-2024-03-10.log")))
	assert.Equal(t, "two\n", read(t, filepath.Join(dir, "archive", "app-2024-03-11.log")))

	require.Len(t, cleaner.calls, 1)
	assert.Equal(t, start.Add(14*time.Hour), cleaner.calls[0])
	assert.Equal(t, 1, counter["app"])
}

func TestWriter_NoRolloverWithinPeriod(t *testing.T) {
	dir := t.TempDir()
	p, cal := daily(t, dir)
	clk := testclock.NewClock(start)
	cleaner := &recordingCleaner{}

	w, err := New(Options{Pattern: p, Calendar: cal, Cleaner: cleaner, Clock: clk})
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 3; i++ {
		_, err := w.Write([]byte("x"))
		require.NoError(t, err)
		clk.Advance(time.Hour)
	}

	assert.Empty(t, cleaner.calls)
	assert.Equal(t, "xxx", read(t, filepath.Join(dir, "archive", "app-2024-03-10.log")))
}

func TestWriter_ArchivesActiveFile(t *testing.T) {
	dir := t.TempDir()
	p, cal := daily(t, dir)
	clk := testclock.NewClock(start)
	active := filepath.Join(dir, "app.log")

	w, err := New(Options{Pattern: p, Calendar: cal, File: active, Clock: clk})
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write([]byte("day one\n"))
	require.NoError(t, err)

	clk.Advance(24 * time.Hour)
	_, err = w.Write([]byte("day two\n"))
	require.NoError(t, err)

	assert.Equal(t, "day one\n", read(t, filepath.Join(dir, "archive", "app-2024-03-10.log")))
	assert.Equal(t, "day two\n", read(t, active))
	assert.Equal(t, active, w.Path())
}

func TestWriter_StaleActiveFileRollsOnFirstWrite(t *testing.T) {
	dir := t.TempDir()
	p, cal := daily(t, dir)
	active := filepath.Join(dir, "app.log")

	require.NoError(t, os.WriteFile(active, []byte("old\n"), 0o644))
	old := start.Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(active, old, old))

	w, err := New(Options{Pattern: p, Calendar: cal, File: active, Clock: testclock.NewClock(start)})
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write([]byte("new\n"))
	require.NoError(t, err)

	assert.Equal(t, "old\n", read(t, filepath.Join(dir, "archive", "app-2024-03-08.log")))
	assert.Equal(t, "new\n", read(t, active))
}

func TestWriter_CleansExpiredArchives(t *testing.T) {
	dir := t.TempDir()
	p, cal := daily(t, dir)
	clk := testclock.NewClock(start)

	r := retention.New(p, cal, retention.Options{Name: "app"})
	require.NoError(t, r.SetMaxHistory(1))

	w, err := New(Options{
		Name:     "app",
		Pattern:  p,
		Calendar: cal,
		File:     filepath.Join(dir, "app.log"),
		Cleaner:  r,
		Clock:    clk,
	})
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 4; i++ {
		_, err := w.Write([]byte("line\n"))
		require.NoError(t, err)
		clk.Advance(24 * time.Hour)
	}

	archive := func(day int) string {
		return filepath.Join(dir, "archive", time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC).Format("app-2006-01-02.log"))
	}
	assert.NoFileExists(t, archive(10))
	assert.NoFileExists(t, archive(11))
	assert.FileExists(t, archive(12))
}

func TestWriter_ForcedRollover(t *testing.T) {
	dir := t.TempDir()
	p, cal := daily(t, dir)
	cleaner := &recordingCleaner{}
	active := filepath.Join(dir, "app.log")

	w, err := New(Options{Pattern: p, Calendar: cal, File: active, Cleaner: cleaner, Clock: testclock.NewClock(start)})
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write([]byte("before\n"))
	require.NoError(t, err)
	require.NoError(t, w.Rollover())

	assert.Equal(t, "before\n", read(t, filepath.Join(dir, "archive", "app-2024-03-10.log")))
	assert.Len(t, cleaner.calls, 1)
}

func TestWriter_Close(t *testing.T) {
	dir := t.TempDir()
	p, cal := daily(t, dir)

	w, err := New(Options{Pattern: p, Calendar: cal, Clock: testclock.NewClock(start)})
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.ErrorIs(t, w.Rollover(), os.ErrClosed)
}

func TestNew_RequiresPatternAndCalendar(t *testing.T) {
	_, err := New(Options{Name: "app"})
	assert.Error(t, err)
}

func TestWriter_RepeatedDSTHourRollsOverOnce(t *testing.T) {
	dir := t.TempDir()
	p, err := pattern.Parse(filepath.ToSlash(dir) + "/app-%d{yyyy-MM-dd_HH, America/New_York}.log")
	require.NoError(t, err)
	cal, err := calendar.New(p)
	require.NoError(t, err)

	// 06:30Z is the second 01:30 of 2024-11-03 in New York
	clk := testclock.NewClock(time.Date(2024, time.November, 3, 6, 30, 0, 0, time.UTC))
	counter := rolloverCounter{}
	active := filepath.Join(dir, "app.log")

	w, err := New(Options{Name: "app", Pattern: p, Calendar: cal, File: active, Clock: clk, Recorder: counter})
	require.NoError(t, err)
	defer w.Close()

	for _, line := range []string{"a\n", "b\n", "c\n"} {
		_, err := w.Write([]byte(line))
		require.NoError(t, err)
		clk.Advance(time.Minute)
	}
	assert.Equal(t, 0, counter["app"])
	assert.Equal(t, "a\nb\nc\n", read(t, active))

	clk.Advance(30 * time.Minute)
	_, err = w.Write([]byte("d\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, counter["app"])
	assert.Equal(t, "a\nb\nc\n", read(t, filepath.Join(dir, "app-2024-11-03_01.log")))
	assert.Equal(t, "d\n", read(t, active))
}

func TestWriter_NeverReplacesArchive(t *testing.T) {
	dir := t.TempDir()
	p, cal := daily(t, dir)
	clk := testclock.NewClock(start)
	active := filepath.Join(dir, "app.log")
	archived := filepath.Join(dir, "archive", "app-2024-03-10.log")

	w, err := New(Options{Pattern: p, Calendar: cal, File: active, Clock: clk})
	require.NoError(t, err)
	defer w.Close()

	_, err = w.Write([]byte("first\n"))
	require.NoError(t, err)
	require.NoError(t, w.Rollover())

	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, w.Rollover(), ErrArchiveExists)

	assert.Equal(t, "first\n", read(t, archived))
	assert.Equal(t, "second\n", read(t, active))

	// writes keep going to the active file until a free name comes up
	_, err = w.Write([]byte("third\n"))
	require.NoError(t, err)
	clk.Advance(24 * time.Hour)
	_, err = w.Write([]byte("fourth\n"))
	require.NoError(t, err)
	clk.Advance(24 * time.Hour)
	_, err = w.Write([]byte("fifth\n"))
	require.NoError(t, err)

	assert.Equal(t, "first\n", read(t, archived))
	assert.Equal(t, "second\nthird\nfourth\n", read(t, filepath.Join(dir, "archive", "app-2024-03-11.log")))
	assert.Equal(t, "fifth\n", read(t, active))
}

func TestWriter_IndexPicksFreeName(t *testing.T) {
	dir := t.TempDir()
	p, err := pattern.Parse(filepath.ToSlash(dir) + "/archive/app-%d{yyyy-MM-dd, UTC}.%i.log")
	require.NoError(t, err)
	cal, err := calendar.New(p)
	require.NoError(t, err)

	w, err := New(Options{Pattern: p, Calendar: cal, File: filepath.Join(dir, "app.log"), Clock: testclock.NewClock(start)})
	require.NoError(t, err)
	defer w.Close()

	for _, line := range []string{"first\n", "second\n"} {
		_, err := w.Write([]byte(line))
		require.NoError(t, err)
		require.NoError(t, w.Rollover())
	}

	assert.Equal(t, "first\n", read(t, filepath.Join(dir, "archive", "app-2024-03-10.0.log")))
	assert.Equal(t, "second\n", read(t, filepath.Join(dir, "archive", "app-2024-03-10.1.log")))
}
