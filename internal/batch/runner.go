package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/fortuna/courtside/internal/processor"
)

// Runner drives the processor over a list of match IDs. One bad match does
// not sink a season re-run; failures are reported and the walk continues.
type Runner struct {
	proc *processor.Processor
}

// NewRunner constructs a runner over a wired processor.
func NewRunner(proc *processor.Processor) *Runner {
	return &Runner{proc: proc}
}

// Run walks the job's match list, reporting progress via the Reporter if
// provided.
func (r *Runner) Run(ctx context.Context, spec JobSpec, reporter Reporter) (RunSummary, error) {
	var summary RunSummary
	if reporter != nil {
		reporter.OnJobStart(spec)
	}

	if len(spec.MatchIDs) == 0 {
		return summary, fmt.Errorf("no match IDs provided")
	}

	if spec.DryRun {
		if reporter != nil {
			reporter.OnProgress("Dry-run mode: no data will be written", 0, len(spec.MatchIDs))
			reporter.OnJobComplete(summary)
		}
		return summary, nil
	}

	total := len(spec.MatchIDs)
	for idx, matchID := range spec.MatchIDs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if idx > 0 && spec.Delay > 0 {
			select {
			case <-time.After(spec.Delay):
			case <-ctx.Done():
				return summary, ctx.Err()
			}
		}

		if reporter != nil {
			reporter.OnProgress(fmt.Sprintf("Processing match %s", matchID), idx, total)
		}

		out, err := r.proc.Process(ctx, matchID, spec.Force)
		if err != nil {
			summary.Failed++
			if reporter != nil {
				reporter.OnMatchFailed(matchID, err)
			}
			continue
		}
		if out.Skipped {
			summary.Skipped++
		} else {
			summary.Processed++
		}
		if reporter != nil {
			reporter.OnMatchProcessed(matchID, out.Skipped)
		}
	}

	if reporter != nil {
		reporter.OnJobComplete(summary)
	}
	if summary.Failed == total {
		return summary, ErrAllFailed
	}
	return summary, nil
}
