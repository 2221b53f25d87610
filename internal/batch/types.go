package batch

import (
	"fmt"
	"log"
	"time"
)

// JobStatus represents the lifecycle state of a job.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// JobSpec describes the work for one batch run. Delay spaces out fetches
// so season re-runs stay polite to the widget host.
type JobSpec struct {
	MatchIDs []string      `json:"match_ids"`
	Force    bool          `json:"force"`
	DryRun   bool          `json:"dry_run"`
	Delay    time.Duration `json:"delay,omitempty"`
}

// Job tracks a spec through its run.
type Job struct {
	JobID           string    `json:"job_id"`
	Spec            JobSpec   `json:"spec"`
	Status          JobStatus `json:"status"`
	StatusMessage   string    `json:"status_message,omitempty"`
	ProgressCurrent int       `json:"progress_current"`
	ProgressTotal   int       `json:"progress_total"`
	Processed       int       `json:"processed"`
	Skipped         int       `json:"skipped"`
	Failed          int       `json:"failed"`
	LastError       string    `json:"last_error,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	StartedAt       time.Time `json:"started_at,omitempty"`
	CompletedAt     time.Time `json:"completed_at,omitempty"`
}

// Copy returns a shallow copy to prevent external mutation.
func (j *Job) Copy() *Job {
	if j == nil {
		return nil
	}
	cpy := *j
	return &cpy
}

// Reporter receives lifecycle callbacks from the runner.
type Reporter interface {
	OnJobStart(spec JobSpec)
	OnMatchProcessed(matchID string, skipped bool)
	OnMatchFailed(matchID string, err error)
	OnProgress(message string, current, total int)
	OnJobComplete(summary RunSummary)
}

// RunSummary totals one finished run.
type RunSummary struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// LogReporter writes progress to the standard logger.
type LogReporter struct{}

func (LogReporter) OnJobStart(spec JobSpec) {
	log.Printf("[batch] Starting job: %d matches (force=%v)", len(spec.MatchIDs), spec.Force)
}

func (LogReporter) OnMatchProcessed(matchID string, skipped bool) {
	if skipped {
		log.Printf("[batch] Match %s already stored", matchID)
		return
	}
	log.Printf("[batch] ✓ Match %s processed", matchID)
}

func (LogReporter) OnMatchFailed(matchID string, err error) {
	log.Printf("[batch] ⚠️  Match %s failed: %v", matchID, err)
}

func (LogReporter) OnProgress(message string, current, total int) {
	log.Printf("[batch] %s (%d/%d)", message, current, total)
}

func (LogReporter) OnJobComplete(s RunSummary) {
	log.Printf("[batch] ✓ Job complete: %d processed, %d skipped, %d failed", s.Processed, s.Skipped, s.Failed)
}

// ErrAllFailed marks a run where not a single match succeeded.
var ErrAllFailed = fmt.Errorf("every match in the batch failed")
