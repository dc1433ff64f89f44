// Package pattern parses and renders time-templated archive file names such
// as "logs/%d{yyyy/MM}/app-%i.log".
//
// A pattern is an ordered sequence of segments: literal text, at most one
// date token (%d, optionally carrying a date format and a time zone) and
// index tokens (%i). Rendering is a pure function of the pattern and its
// inputs.
package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultDateFormat is used when a %d token carries no format.
const DefaultDateFormat = "yyyy-MM-dd"

// Kind identifies the type of a Segment.
type Kind int

const (
	Literal Kind = iota
	Date
	Index
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Date:
		return "date"
	case Index:
		return "index"
	default:
		return "unknown"
	}
}

// Segment is one element of a file name pattern. For Literal segments Text
// is the literal text, for Date segments it is the date format.
type Segment struct {
	Kind     Kind
	Text     string
	Location *time.Location
}

// FileNamePattern is a parsed file name pattern. It is immutable.
type FileNamePattern struct {
	raw      string
	segments []Segment
	date     *dateFormat
}

// Parse tokenizes s into a FileNamePattern.
func Parse(s string) (*FileNamePattern, error) {
	p := &FileNamePattern{raw: s}

	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			p.segments = append(p.segments, Segment{Kind: Literal, Text: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(s) {
		c := s[i]
		if c != '%' || i+1 == len(s) {
			lit.WriteByte(c)
			i++
			continue
		}

		switch s[i+1] {
		case '%':
			lit.WriteByte('%')
			i += 2

		case 'i':
			flush()
			p.segments = append(p.segments, Segment{Kind: Index})
			i += 2

		case 'd':
			flush()
			if p.date != nil {
				return nil, fmt.Errorf("pattern %q: more than one date token", s)
			}
			i += 2

			option := ""
			if i < len(s) && s[i] == '{' {
				end := strings.IndexByte(s[i:], '}')
				if end < 0 {
					return nil, fmt.Errorf("pattern %q: unterminated '{' at offset %d", s, i)
				}
				option = s[i+1 : i+end]
				i += end + 1
			}

			seg, err := dateSegment(option)
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %w", s, err)
			}
			df, err := compileDateFormat(seg.Text)
			if err != nil {
				return nil, fmt.Errorf("pattern %q: %w", s, err)
			}
			p.segments = append(p.segments, seg)
			p.date = df

		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()

	return p, nil
}

// dateSegment builds the Date segment for the option of a %d token:
// "format" or "format, TimeZone".
func dateSegment(option string) (Segment, error) {
	format, zone, _ := strings.Cut(option, ",")
	format = strings.TrimSpace(format)
	zone = strings.TrimSpace(zone)

	if format == "" {
		format = DefaultDateFormat
	}

	loc := time.Local
	if zone != "" {
		l, err := time.LoadLocation(zone)
		if err != nil {
			return Segment{}, fmt.Errorf("loading time zone %q: %w", zone, err)
		}
		loc = l
	}

	return Segment{Kind: Date, Text: format, Location: loc}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) *FileNamePattern {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Segments returns a copy of the pattern's segments in template order.
func (p *FileNamePattern) Segments() []Segment {
	return append([]Segment(nil), p.segments...)
}

// DateSegment returns the date segment, if the pattern has one.
func (p *FileNamePattern) DateSegment() (Segment, bool) {
	for _, seg := range p.segments {
		if seg.Kind == Date {
			return seg, true
		}
	}
	return Segment{}, false
}

// HasIndex reports whether the pattern has a %i token.
func (p *FileNamePattern) HasIndex() bool {
	for _, seg := range p.segments {
		if seg.Kind == Index {
			return true
		}
	}
	return false
}

// Location returns the time zone of the date segment, or time.Local.
func (p *FileNamePattern) Location() *time.Location {
	if seg, ok := p.DateSegment(); ok {
		return seg.Location
	}
	return time.Local
}

// Render renders the pattern for t. Index tokens render as 0.
func (p *FileNamePattern) Render(t time.Time) string {
	return p.RenderIndexed(t, 0)
}

// RenderIndexed renders the pattern for t and sequence index idx.
func (p *FileNamePattern) RenderIndexed(t time.Time, idx int) string {
	var b strings.Builder
	for _, seg := range p.segments {
		switch seg.Kind {
		case Literal:
			b.WriteString(seg.Text)
		case Date:
			b.WriteString(p.date.format(t.In(seg.Location)))
		case Index:
			b.WriteString(strconv.Itoa(idx))
		}
	}
	return b.String()
}

// String returns the pattern as it was parsed.
func (p *FileNamePattern) String() string {
	return p.raw
}
