package pattern

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Segments(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    []Segment
	}{
		{
			name:    "date in directory",
			pattern: "logs/%d{yyyy/MM}/app.log",
			want: []Segment{
				{Kind: Literal, Text: "logs/"},
				{Kind: Date, Text: "yyyy/MM", Location: time.Local},
				{Kind: Literal, Text: "/app.log"},
			},
		},
		{
			name:    "default date format",
			pattern: "app-%d.log",
			want: []Segment{
				{Kind: Literal, Text: "app-"},
				{Kind: Date, Text: DefaultDateFormat, Location: time.Local},
				{Kind: Literal, Text: ".log"},
			},
		},
		{
			name:    "index token",
			pattern: "app-%d{yyyy-MM-dd}.%i.log",
			want: []Segment{
				{Kind: Literal, Text: "app-"},
				{Kind: Date, Text: "yyyy-MM-dd", Location: time.Local},
				{Kind: Literal, Text: "."},
				{Kind: Index},
				{Kind: Literal, Text: ".log"},
			},
		},
		{
			name:    "escaped percent and trailing percent",
			pattern: "100%%-%d{yyyy}%",
			want: []Segment{
				{Kind: Literal, Text: "100%-"},
				{Kind: Date, Text: "yyyy", Location: time.Local},
				{Kind: Literal, Text: "%"},
			},
		},
		{
			name:    "unknown conversion is literal",
			pattern: "a%xb",
			want: []Segment{
				{Kind: Literal, Text: "a%xb"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Segments())
			assert.Equal(t, tt.pattern, p.String())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"unterminated option", "app-%d{yyyy-MM.log"},
		{"two date tokens", "%d{yyyy}/%d{MM}.log"},
		{"bad time zone", "app-%d{yyyy, Nowhere/Special}.log"},
		{"unsupported letter", "app-%d{yyyy-WW}.log"},
		{"unterminated quote", "app-%d{yyyy-'MM}.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.pattern)
			assert.Error(t, err)
		})
	}
}

func TestRender(t *testing.T) {
	ts := time.Date(2024, time.March, 4, 15, 7, 9, 123*int(time.Millisecond), time.UTC)

	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"daily flat", "archive/%d{yyyy-MM-dd, UTC}.log", "archive/2024-03-04.log"},
		{"nested", "archive/%d{yyyy/MM/dd, UTC}.log", "archive/2024/03/04.log"},
		{"default format", "app-%d{, UTC}.log", "app-2024-03-04.log"},
		{"hourly", "app-%d{yyyy-MM-dd_HH, UTC}.log", "app-2024-03-04_15.log"},
		{"minutes seconds", "%d{HH-mm-ss, UTC}", "15-07-09"},
		{"day of year", "%d{yyyy-DDD, UTC}", "2024-064"},
		{"iso day number", "%d{u, UTC}", "1"},
		{"month names", "%d{MMM MMMM, UTC}", "Mar March"},
		{"short year unpadded month", "%d{yy-M-d, UTC}", "24-3-4"},
		{"twelve hour clock", "%d{hh a, UTC}", "03 PM"},
		{"weekday", "%d{EEE EEEE, UTC}", "Mon Monday"},
		{"iso week", "%d{yyyy-'W'ww, UTC}", "2024-W10"},
		{"quoted text", "%d{'day' dd 'o''clock', UTC}", "day 04 o'clock"},
		{"index renders zero", "app-%d{yyyy, UTC}.%i.log", "app-2024.0.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := MustParse(tt.pattern)
			assert.Equal(t, tt.want, p.Render(ts))
		})
	}
}

func TestRenderIndexed(t *testing.T) {
	p := MustParse("app-%d{yyyy-MM-dd, UTC}.%i.log")
	ts := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "app-2024-03-04.7.log", p.RenderIndexed(ts, 7))
}

func TestRender_ConvertsToPatternLocation(t *testing.T) {
	p := MustParse("%d{yyyy-MM-dd HH, UTC}")
	ts := time.Date(2024, time.March, 4, 1, 0, 0, 0, time.FixedZone("plus3", 3*3600))

	assert.Equal(t, "2024-03-03 22", p.Render(ts))
}

func TestDateSegment(t *testing.T) {
	seg, ok := MustParse("a/%d{yyyy}/b").DateSegment()
	require.True(t, ok)
	assert.Equal(t, "yyyy", seg.Text)

	_, ok = MustParse("a/b.log").DateSegment()
	assert.False(t, ok)
}

func TestSegments_ReturnsCopy(t *testing.T) {
	p := MustParse("a/%d/b")
	segs := p.Segments()
	segs[0].Text = "changed"

	assert.Equal(t, "a/", p.Segments()[0].Text)
}
