package pattern

import (
	"fmt"
	"strings"
	"time"

	"github.com/vjeantet/jodaTime"
)

// dateFormat is a compiled SimpleDateFormat-style layout ("yyyy-MM-dd_HH").
// Quoting is resolved here; each run of a pattern letter is rendered by
// jodaTime.
type dateFormat struct {
	tokens []dateToken
}

type dateToken struct {
	layout  string // letter run passed to jodaTime, empty for literal text
	literal string
}

// letterAliases maps SimpleDateFormat letters to their Joda equivalents.
// Letters with no equivalent (W, F, L, X) are rejected.
var letterAliases = map[byte]byte{
	'u': 'e', // day number of week, 1 = Monday
	'Y': 'x', // week year
}

const jodaLetters = "GyMdHhmsSaEwDkKzZex"

func compileDateFormat(layout string) (*dateFormat, error) {
	f := &dateFormat{}

	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			f.tokens = append(f.tokens, dateToken{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(layout); {
		c := layout[i]

		switch {
		case c == '\'':
			// '' is an escaped quote, 'text' is quoted literal text
			if i+1 < len(layout) && layout[i+1] == '\'' {
				lit.WriteByte('\'')
				i += 2
				continue
			}
			closed := false
			for i++; i < len(layout); {
				if layout[i] == '\'' {
					if i+1 < len(layout) && layout[i+1] == '\'' {
						lit.WriteByte('\'')
						i += 2
						continue
					}
					i++
					closed = true
					break
				}
				lit.WriteByte(layout[i])
				i++
			}
			if !closed {
				return nil, fmt.Errorf("date format %q: unterminated quote", layout)
			}

		case isASCIILetter(c):
			letter := c
			if alias, ok := letterAliases[c]; ok {
				letter = alias
			}
			if strings.IndexByte(jodaLetters, letter) < 0 {
				return nil, fmt.Errorf("date format %q: unsupported pattern letter %q", layout, c)
			}
			flush()
			j := i
			for j < len(layout) && layout[j] == c {
				j++
			}
			f.tokens = append(f.tokens, dateToken{layout: strings.Repeat(string(letter), j-i)})
			i = j

		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()

	return f, nil
}

func isASCIILetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func (f *dateFormat) format(t time.Time) string {
	var b strings.Builder
	for _, tok := range f.tokens {
		if tok.layout == "" {
			b.WriteString(tok.literal)
			continue
		}
		b.WriteString(jodaTime.Format(tok.layout, t))
	}
	return b.String()
}
