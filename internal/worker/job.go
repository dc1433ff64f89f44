package worker

import (
	"time"
)

// Job asks the worker to sweep every target as of At.
type Job struct {
	At     time.Time
	Reason string // "schedule", "startup", "reload", ...
}
