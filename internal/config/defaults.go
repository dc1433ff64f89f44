package config

import "time"

const (
	DefaultCron           = "@hourly"
	DefaultMetricsListen  = ":9109"
	DefaultMetricsPath    = "/metrics"
	DefaultReloadMethod   = "auto"
	DefaultPollInterval   = 5 * time.Second
	DefaultDebounceWindow = 500 * time.Millisecond
)

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	if c.ConfigReload.Method == "" {
		c.ConfigReload.Method = DefaultReloadMethod
	}
	if c.ConfigReload.PollInterval <= 0 {
		c.ConfigReload.PollInterval = DefaultPollInterval
	}
	if c.ConfigReload.DebounceWindow <= 0 {
		c.ConfigReload.DebounceWindow = DefaultDebounceWindow
	}

	if c.Metrics.Listen == "" {
		c.Metrics.Listen = DefaultMetricsListen
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}

	if c.Schedule.Cron == "" {
		c.Schedule.Cron = DefaultCron
	}
}
