// Package rules selects configuration rules by hierarchical name.
//
// Names and rules are slash separated segment lists ("web/api/access").
// A rule may be an exact name, a tail rule ("*/access") or a prefix rule
// ("web/*"); Store picks the most specific one.
package rules

import "strings"

// Wildcard is the segment that starts a tail rule or ends a prefix rule.
const Wildcard = "*"

// Pattern is a parsed list of name segments. Empty segments are dropped, so
// "/a//b/" and "a/b" are the same pattern.
type Pattern struct {
	parts []string
}

// Parse splits s on '/'.
func Parse(s string) Pattern {
	var parts []string
	for _, p := range strings.Split(s, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return Pattern{parts: parts}
}

func (p Pattern) Size() int { return len(p.parts) }

// Get returns segment i, or "" when out of range.
func (p Pattern) Get(i int) string {
	if i < 0 || i >= len(p.parts) {
		return ""
	}
	return p.parts[i]
}

// PeekLast returns the last segment, or "" for an empty pattern.
func (p Pattern) PeekLast() string {
	return p.Get(len(p.parts) - 1)
}

func (p Pattern) String() string {
	return strings.Join(p.parts, "/")
}

// Equal compares segment lists.
func (p Pattern) Equal(o Pattern) bool {
	if len(p.parts) != len(o.parts) {
		return false
	}
	for i := range p.parts {
		if p.parts[i] != o.parts[i] {
			return false
		}
	}
	return true
}

// TailMatchLength counts the trailing segments p shares with rule.
func (p Pattern) TailMatchLength(rule Pattern) int {
	n := min(p.Size(), rule.Size())
	match := 0
	for i := 1; i <= n; i++ {
		if p.parts[p.Size()-i] != rule.parts[rule.Size()-i] {
			break
		}
		match++
	}
	return match
}

// PrefixMatchLength counts the leading segments p shares with rule.
func (p Pattern) PrefixMatchLength(rule Pattern) int {
	n := min(p.Size(), rule.Size())
	match := 0
	for i := 0; i < n; i++ {
		if p.parts[i] != rule.parts[i] {
			break
		}
		match++
	}
	return match
}

func (p Pattern) isTailRule() bool {
	return p.Size() > 1 && p.parts[0] == Wildcard
}

func (p Pattern) isPrefixRule() bool {
	return p.Size() > 1 && p.PeekLast() == Wildcard
}

func (p Pattern) isCatchAll() bool {
	return p.Size() == 1 && p.parts[0] == Wildcard
}
