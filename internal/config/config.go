// Package config loads the rollclean YAML configuration.
package config

import "time"

type Config struct {
	Logging      LoggingConfig  `yaml:"logging"`
	ConfigReload ReloadConfig   `yaml:"configReload"`
	Metrics      MetricsConfig  `yaml:"metrics"`
	Schedule     ScheduleConfig `yaml:"schedule"`
	Defaults     Defaults       `yaml:"defaults"`
	Targets      []Target       `yaml:"targets"`
	Overrides    []Override     `yaml:"overrides"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json", "text"
}

type ReloadConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Method         string        `yaml:"method"`         // "auto", "poll", "fsnotify"
	PollInterval   time.Duration `yaml:"pollInterval"`   // e.g. 5s
	DebounceWindow time.Duration `yaml:"debounceWindow"` // e.g. 500ms
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"` // e.g. ":9109"
	Path    string `yaml:"path"`   // e.g. "/metrics"
}

type ScheduleConfig struct {
	Cron         string `yaml:"cron"` // standard cron or descriptor, e.g. "@hourly"
	CleanOnStart bool   `yaml:"cleanOnStart"`
}

type Defaults struct {
	// MaxHistory applies to targets without their own window or a matching
	// override. Zero is a valid window: only the current period is kept.
	MaxHistory *int `yaml:"maxHistory"`
}

// Target is one rolling output whose archives are subject to retention.
type Target struct {
	Name string `yaml:"name"`
	// FileNamePattern renders archive paths, e.g. "logs/%d{yyyy/MM}/app.log".
	FileNamePattern string `yaml:"fileNamePattern"`
	// File is the optional active file that is renamed on rollover.
	File string `yaml:"file"`
	// MaxHistory is the number of periods to keep; nil falls back to
	// overrides and then to defaults.
	MaxHistory *int `yaml:"maxHistory"`
}

// Override sets the window for every target whose name matches a rule such
// as "*/access" or "web/*".
type Override struct {
	Match      string `yaml:"match"`
	MaxHistory int    `yaml:"maxHistory"`
}
