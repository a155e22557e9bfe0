// Package metrics records document generation, store mutation and backup
// activity.
package metrics

import "time"

// ResultLabel enumerates generation result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks. Services take a Recorder so that tests
// and metric-less runs can pass NoopRecorder.
type Recorder interface {
	ObserveGenerate(d time.Duration, events, eras int)
	IncGenerateResult(result ResultLabel)
	IncMutation(entity, op string)
	IncBackup(success bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are disabled).
type NoopRecorder struct{}

func (NoopRecorder) ObserveGenerate(time.Duration, int, int) {}
func (NoopRecorder) IncGenerateResult(ResultLabel)           {}
func (NoopRecorder) IncMutation(string, string)              {}
func (NoopRecorder) IncBackup(bool)                          {}
