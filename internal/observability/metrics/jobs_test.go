package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMetric struct {
	name string
	tags map[string]string
}

type captureSink struct {
	counts  []capturedMetric
	timings []capturedMetric
}

func (s *captureSink) Count(name string, value int64, tags map[string]string) {
	s.counts = append(s.counts, capturedMetric{name: name, tags: tags})
}

func (s *captureSink) Gauge(name string, value float64, tags map[string]string) {}

func (s *captureSink) Timing(name string, value time.Duration, tags map[string]string) {
	s.timings = append(s.timings, capturedMetric{name: name, tags: tags})
}

func TestEmitJobOperation(t *testing.T) {
	sink := &captureSink{}

	EmitJobOperation(sink, JobOperation{
		Operation: "submit",
		Result:    ResultSuccess,
		Duration:  120 * time.Millisecond,
	})

	require.Len(t, sink.counts, 1)
	assert.Equal(t, "job.operation", sink.counts[0].name)
	assert.Equal(t, map[string]string{
		"operation": "submit",
		"result":    "success",
	}, sink.counts[0].tags)

	require.Len(t, sink.timings, 1)
	assert.Equal(t, "job.operation.duration", sink.timings[0].name)
}

func TestEmitJobOperation_NoDuration(t *testing.T) {
	sink := &captureSink{}

	EmitJobOperation(sink, JobOperation{
		Operation: "latest_result",
		Result:    ResultNoMatch,
	})

	require.Len(t, sink.counts, 1)
	assert.Empty(t, sink.timings)
}

func TestEmitJobOperation_NilSink(t *testing.T) {
	assert.NotPanics(t, func() {
		EmitJobOperation(nil, JobOperation{Operation: "submit", Result: ResultError})
	})
}
