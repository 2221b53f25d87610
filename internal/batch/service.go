package batch

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Service coordinates queued jobs behind the REST API: one job runs at a
// time, the rest wait in order. Jobs live in memory; a restart drops the
// queue, and callers re-enqueue. Match results themselves are idempotent,
// so replaying a queue is harmless.
type Service struct {
	runner       *Runner
	historyLimit int

	mu      sync.Mutex
	queue   []*Job
	active  *Job
	history []*Job
	nextID  int

	wake   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *log.Logger
}

// NewService constructs a Service. Call Start to launch the worker.
func NewService(runner *Runner, logger *log.Logger) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	if logger == nil {
		logger = log.New(log.Writer(), "[batch] ", log.LstdFlags)
	}
	return &Service{
		runner:       runner,
		historyLimit: 10,
		wake:         make(chan struct{}, 1),
		ctx:          ctx,
		cancel:       cancel,
		logger:       logger,
	}
}

// Start launches the background worker loop.
func (s *Service) Start() {
	s.wg.Add(1)
	go s.worker()
}

// Shutdown stops the worker and waits for the active job to finish or the
// context to expire.
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.wg.Wait()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Enqueue adds a job to the queue.
func (s *Service) Enqueue(spec JobSpec) (*Job, error) {
	if len(spec.MatchIDs) == 0 {
		return nil, fmt.Errorf("job requires at least one match id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	job := &Job{
		JobID:         fmt.Sprintf("job-%d", s.nextID),
		Spec:          spec,
		Status:        JobStatusQueued,
		StatusMessage: "Queued",
		ProgressTotal: len(spec.MatchIDs),
		CreatedAt:     time.Now().UTC(),
	}
	s.queue = append(s.queue, job)

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return job.Copy(), nil
}

// StatusSummary is returned to API callers.
type StatusSummary struct {
	ActiveJob *Job   `json:"active_job,omitempty"`
	Queued    []*Job `json:"queued_jobs,omitempty"`
	History   []*Job `json:"recent_jobs,omitempty"`
}

// Status snapshots the queue.
func (s *Service) Status() StatusSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := StatusSummary{ActiveJob: s.active.Copy()}
	for _, j := range s.queue {
		out.Queued = append(out.Queued, j.Copy())
	}
	for _, j := range s.history {
		out.History = append(out.History, j.Copy())
	}
	return out
}

func (s *Service) worker() {
	defer s.wg.Done()
	for {
		job := s.dequeue()
		if job == nil {
			select {
			case <-s.ctx.Done():
				return
			case <-s.wake:
				continue
			}
		}
		s.runJob(job)
	}
}

func (s *Service) dequeue() *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil
	}
	job := s.queue[0]
	s.queue = s.queue[1:]
	s.active = job
	job.Status = JobStatusRunning
	job.StatusMessage = "Running"
	job.StartedAt = time.Now().UTC()
	return job
}

func (s *Service) runJob(job *Job) {
	s.logger.Printf("job %s started: %d matches", job.JobID, len(job.Spec.MatchIDs))

	summary, err := s.runner.Run(s.ctx, job.Spec, &jobReporter{svc: s, job: job})

	s.mu.Lock()
	defer s.mu.Unlock()
	job.CompletedAt = time.Now().UTC()
	job.Processed = summary.Processed
	job.Skipped = summary.Skipped
	job.Failed = summary.Failed
	switch {
	case err == nil:
		job.Status = JobStatusCompleted
		job.StatusMessage = fmt.Sprintf("Completed: %d processed, %d skipped, %d failed",
			summary.Processed, summary.Skipped, summary.Failed)
	case s.ctx.Err() != nil:
		job.Status = JobStatusCancelled
		job.StatusMessage = "Cancelled during shutdown"
	default:
		job.Status = JobStatusFailed
		job.StatusMessage = err.Error()
		job.LastError = err.Error()
	}
	s.active = nil

	s.history = append([]*Job{job}, s.history...)
	if len(s.history) > s.historyLimit {
		s.history = s.history[:s.historyLimit]
	}
	s.logger.Printf("job %s finished: %s", job.JobID, job.StatusMessage)
}

// jobReporter mirrors runner callbacks into the job record.
type jobReporter struct {
	svc *Service
	job *Job
}

func (r *jobReporter) OnJobStart(spec JobSpec) {}

func (r *jobReporter) OnMatchProcessed(matchID string, skipped bool) {
	r.svc.mu.Lock()
	defer r.svc.mu.Unlock()
	r.job.ProgressCurrent++
	if skipped {
		r.job.Skipped++
	} else {
		r.job.Processed++
	}
}

func (r *jobReporter) OnMatchFailed(matchID string, err error) {
	r.svc.mu.Lock()
	defer r.svc.mu.Unlock()
	r.job.ProgressCurrent++
	r.job.Failed++
	r.job.LastError = fmt.Sprintf("match %s: %v", matchID, err)
}

func (r *jobReporter) OnProgress(message string, current, total int) {
	r.svc.mu.Lock()
	defer r.svc.mu.Unlock()
	r.job.StatusMessage = message
}

func (r *jobReporter) OnJobComplete(summary RunSummary) {}
