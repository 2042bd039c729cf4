package site

import (
	"time"

	"github.com/google/uuid"
)

// Build outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// StageTiming records one executed stage.
type StageTiming struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
}

// Report summarizes one build run.
type Report struct {
	BuildID         string        `json:"build_id"`
	StartedAt       time.Time     `json:"started_at"`
	Duration        time.Duration `json:"duration"`
	Stages          []StageTiming `json:"stages"`
	Pages           int           `json:"pages"`
	SkippedNotFound int           `json:"skipped_not_found"`
	SkippedFiltered int           `json:"skipped_filtered"`
	Outcome         string        `json:"outcome"`
	Error           string        `json:"error,omitempty"`
}

// NewReport starts a report for a fresh build.
func NewReport() *Report {
	return &Report{
		BuildID:   uuid.NewString(),
		StartedAt: time.Now(),
	}
}

func (r *Report) recordStage(name string, d time.Duration) {
	r.Stages = append(r.Stages, StageTiming{Name: name, Duration: d})
}

func (r *Report) finish(err error) {
	r.Duration = time.Since(r.StartedAt)
	if err != nil {
		r.Outcome = OutcomeFailed
		r.Error = err.Error()
		return
	}
	r.Outcome = OutcomeSuccess
}
