// Package calendar implements the rolling calendar: it knows the rollover
// period of a file name pattern and moves timestamps by whole periods.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/raoulx24/rollclean/internal/pattern"
)

// Periodicity is the rollover granularity of a file name pattern.
type Periodicity int

const (
	Minute Periodicity = iota + 1
	Hour
	HalfDay
	Day
	Week
	Month
)

// candidates in the order they are probed, finest first.
var candidates = []Periodicity{Minute, Hour, HalfDay, Day, Week, Month}

func (p Periodicity) String() string {
	switch p {
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	case HalfDay:
		return "half-day"
	case Day:
		return "day"
	case Week:
		return "week"
	case Month:
		return "month"
	default:
		return fmt.Sprintf("Periodicity(%d)", int(p))
	}
}

// ErrNoPeriodicity is returned when a pattern renders the same name for
// every supported period.
var ErrNoPeriodicity = errors.New("pattern has no supported rollover period")

// RollingCalendar shifts timestamps by whole rollover periods in a fixed
// location.
type RollingCalendar struct {
	periodicity Periodicity
	loc         *time.Location
}

// New derives the periodicity of p by rendering local midnight of
// 1970-01-01 and the same instant moved by one candidate period; the first
// candidate that changes the rendered name wins.
func New(p *pattern.FileNamePattern) (*RollingCalendar, error) {
	if _, ok := p.DateSegment(); !ok {
		return nil, fmt.Errorf("pattern %q: no date token", p)
	}

	loc := p.Location()
	epoch := time.Date(1970, time.January, 1, 0, 0, 0, 0, loc)
	base := p.Render(epoch)

	for _, c := range candidates {
		probe := NewWithPeriodicity(c, loc)
		if p.Render(probe.Shift(epoch, 1)) != base {
			return probe, nil
		}
	}

	return nil, fmt.Errorf("pattern %q: %w", p, ErrNoPeriodicity)
}

// NewWithPeriodicity returns a calendar with an explicit periodicity.
func NewWithPeriodicity(p Periodicity, loc *time.Location) *RollingCalendar {
	if loc == nil {
		loc = time.Local
	}
	return &RollingCalendar{periodicity: p, loc: loc}
}

// Periodicity returns the rollover period.
func (c *RollingCalendar) Periodicity() Periodicity {
	return c.periodicity
}

// Start returns the start of the period containing t.
func (c *RollingCalendar) Start(t time.Time) time.Time {
	t = t.In(c.loc)
	y, mo, d := t.Date()

	switch c.periodicity {
	case Minute:
		return t.Add(-sinceMinute(t))
	case Hour:
		// subtract instead of rebuilding with time.Date, which picks the
		// first of two instants in a repeated DST hour
		return t.Add(-time.Duration(t.Minute())*time.Minute - sinceMinute(t))
	case HalfDay:
		return time.Date(y, mo, d, t.Hour()-t.Hour()%12, 0, 0, 0, c.loc)
	case Day:
		return time.Date(y, mo, d, 0, 0, 0, 0, c.loc)
	case Week:
		// weeks start on Monday
		back := (int(t.Weekday()) + 6) % 7
		return time.Date(y, mo, d-back, 0, 0, 0, 0, c.loc)
	case Month:
		return time.Date(y, mo, 1, 0, 0, 0, 0, c.loc)
	}
	return t
}

func sinceMinute(t time.Time) time.Duration {
	return time.Duration(t.Second())*time.Second + time.Duration(t.Nanosecond())
}

// Shift moves t to the start of its period and then by n whole periods.
// Negative n moves backwards.
func (c *RollingCalendar) Shift(t time.Time, n int) time.Time {
	start := c.Start(t)
	y, mo, d := start.Date()

	switch c.periodicity {
	case Minute:
		return start.Add(time.Duration(n) * time.Minute)
	case Hour:
		return start.Add(time.Duration(n) * time.Hour)
	case HalfDay:
		return time.Date(y, mo, d, start.Hour()+12*n, 0, 0, 0, c.loc)
	case Day:
		return time.Date(y, mo, d+n, 0, 0, 0, 0, c.loc)
	case Week:
		return time.Date(y, mo, d+7*n, 0, 0, 0, 0, c.loc)
	case Month:
		return time.Date(y, mo+time.Month(n), 1, 0, 0, 0, 0, c.loc)
	}
	return start
}

// Next returns the start of the period following the one containing t.
func (c *RollingCalendar) Next(t time.Time) time.Time {
	return c.Shift(t, 1)
}
