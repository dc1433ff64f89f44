package rules

// Store maps rules to values.
type Store[T any] struct {
	entries []entry[T]
}

type entry[T any] struct {
	rule  Pattern
	value T
}

// Add registers a rule. Later rules win ties.
func (s *Store[T]) Add(rule string, v T) {
	s.entries = append(s.entries, entry[T]{rule: Parse(rule), value: v})
}

// Len returns the number of rules.
func (s *Store[T]) Len() int {
	return len(s.entries)
}

// Match returns the value of the most specific rule for name: an exact
// rule, else the longest fully matching tail rule, else the longest fully
// matching prefix rule, else a catch-all "*" rule.
func (s *Store[T]) Match(name string) (T, bool) {
	var zero T
	p := Parse(name)

	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].rule.Equal(p) {
			return s.entries[i].value, true
		}
	}

	if v, ok := s.best(p, Pattern.isTailRule, Pattern.TailMatchLength); ok {
		return v, true
	}
	if v, ok := s.best(p, Pattern.isPrefixRule, Pattern.PrefixMatchLength); ok {
		return v, true
	}

	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].rule.isCatchAll() {
			return s.entries[i].value, true
		}
	}
	return zero, false
}

func (s *Store[T]) best(p Pattern, kind func(Pattern) bool, length func(Pattern, Pattern) int) (T, bool) {
	var (
		found   bool
		value   T
		longest int
	)
	for _, e := range s.entries {
		if !kind(e.rule) {
			continue
		}
		// every segment but the wildcard has to match
		n := length(p, e.rule)
		if n != e.rule.Size()-1 {
			continue
		}
		if n >= longest {
			found, value, longest = true, e.value, n
		}
	}
	return value, found
}
