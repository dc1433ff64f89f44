package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/raoulx24/rollclean/internal/pattern"
)

// ValidationError lists every problem found in a config.
type ValidationError struct {
	Problems []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}

// Validate checks the config for errors that would make targets unusable.
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if _, err := cron.ParseStandard(c.Schedule.Cron); err != nil {
		add("schedule.cron %q: %v", c.Schedule.Cron, err)
	}

	switch c.ConfigReload.Method {
	case "auto", "poll", "fsnotify":
	default:
		add("configReload.method %q: want auto, poll or fsnotify", c.ConfigReload.Method)
	}

	if c.Defaults.MaxHistory != nil && *c.Defaults.MaxHistory < 0 {
		add("defaults.maxHistory must not be negative")
	}

	overrides := c.overrideStore()

	seen := map[string]bool{}
	for i, t := range c.Targets {
		field := fmt.Sprintf("targets[%d]", i)
		if t.Name == "" {
			add("%s.name is required", field)
		} else if seen[t.Name] {
			add("%s.name %q is duplicated", field, t.Name)
		}
		seen[t.Name] = true

		if t.FileNamePattern == "" {
			add("%s.fileNamePattern is required", field)
		} else if p, err := pattern.Parse(t.FileNamePattern); err != nil {
			add("%s.fileNamePattern: %v", field, err)
		} else if _, ok := p.DateSegment(); !ok {
			add("%s.fileNamePattern %q has no %%d token", field, t.FileNamePattern)
		}

		if t.MaxHistory != nil && *t.MaxHistory < 0 {
			add("%s.maxHistory must not be negative", field)
		}
		if _, ok := c.window(t, overrides); !ok {
			add("%s has no maxHistory and neither an override nor defaults.maxHistory applies", field)
		}
	}

	for i, o := range c.Overrides {
		if strings.Trim(o.Match, "/") == "" {
			add("overrides[%d].match is required", i)
		}
		if o.MaxHistory < 0 {
			add("overrides[%d].maxHistory must not be negative", i)
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
