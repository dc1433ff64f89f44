package config

import "github.com/raoulx24/rollclean/internal/rules"

// Resolve returns the targets with their effective window filled in: the
// target's own maxHistory, else the most specific matching override, else
// defaults.maxHistory.
func (c *Config) Resolve() []Target {
	overrides := c.overrideStore()

	out := make([]Target, 0, len(c.Targets))
	for _, t := range c.Targets {
		if n, ok := c.window(t, overrides); ok {
			t.MaxHistory = &n
		}
		out = append(out, t)
	}
	return out
}

// Target returns the resolved target with the given name.
func (c *Config) Target(name string) (Target, bool) {
	for _, t := range c.Resolve() {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

func (c *Config) overrideStore() *rules.Store[int] {
	s := &rules.Store[int]{}
	for _, o := range c.Overrides {
		s.Add(o.Match, o.MaxHistory)
	}
	return s
}

func (c *Config) window(t Target, overrides *rules.Store[int]) (int, bool) {
	if t.MaxHistory != nil {
		return *t.MaxHistory, true
	}
	if n, ok := overrides.Match(t.Name); ok {
		return n, true
	}
	if c.Defaults.MaxHistory != nil {
		return *c.Defaults.MaxHistory, true
	}
	return 0, false
}

// Window returns the effective maxHistory of a resolved target.
func (t Target) Window() int {
	if t.MaxHistory == nil {
		return 0
	}
	return *t.MaxHistory
}
