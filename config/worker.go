package config

import (
	"strings"
	"time"
)

// WorkerConfig contains the compute worker endpoint configuration. The worker
// is the external service that executes calibration and superdark jobs; every
// submission, poll, and cancel goes through it.
type WorkerConfig struct {
	// BaseURL is the worker's API root, e.g. "http://calib-worker:9000".
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:9000"`

	// Timeout bounds each request to the worker. There is no internal retry;
	// the dashboard owns polling cadence.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to worker configuration values.
func (w *WorkerConfig) Sanitize() {
	w.BaseURL = strings.TrimRight(strings.TrimSpace(w.BaseURL), "/")
	if w.Timeout <= 0 {
		w.Timeout = 30 * time.Second
	}
}
