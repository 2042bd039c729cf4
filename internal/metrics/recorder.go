// Package metrics records build observability data.
package metrics

import "time"

// Recorder receives build measurements. Implementations must be safe
// for concurrent use.
type Recorder interface {
	// ObserveStageDuration records how long one build stage took.
	ObserveStageDuration(stage string, d time.Duration)
	// ObserveBuildDuration records the total build duration.
	ObserveBuildDuration(d time.Duration)
	// AddArticles counts article candidates by outcome
	// (resolved, not_found, filtered).
	AddArticles(outcome string, n int)
	// IncBuildOutcome counts finished builds by final status.
	IncBuildOutcome(outcome string)
}

// Article outcome labels.
const (
	OutcomeResolved = "resolved"
	OutcomeNotFound = "not_found"
	OutcomeFiltered = "filtered"
)

// Noop is a Recorder that discards everything.
type Noop struct{}

func (Noop) ObserveStageDuration(string, time.Duration) {}
func (Noop) ObserveBuildDuration(time.Duration)         {}
func (Noop) AddArticles(string, int)                    {}
func (Noop) IncBuildOutcome(string)                     {}
