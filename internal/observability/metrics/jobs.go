// Package metrics defines standardised metric emission for job orchestration
// operations.
package metrics

import (
	"time"

	"github.com/deepskylab/calib-ui-api/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoMatch = "no_match"
)

// JobOperation captures one orchestration operation for metric emission.
type JobOperation struct {
	Operation string
	Result    string
	Duration  time.Duration
}

// EmitJobOperation emits a count and, when timed, a duration for one
// orchestration operation.
func EmitJobOperation(sink statsd.Sink, in JobOperation) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"operation": in.Operation,
		"result":    in.Result,
	}

	sink.Count("job.operation", 1, tags)
	if in.Duration > 0 {
		sink.Timing("job.operation.duration", in.Duration, tags)
	}
}
