// Package processor ties the pipeline together: fetch a match, replay its
// play-by-play, verify against the official box, persist, and fan out.
package processor

import (
	"context"
	"fmt"
	"log"

	"github.com/fortuna/courtside/internal/pbp"
	"github.com/fortuna/courtside/internal/reconciliation"
	"github.com/fortuna/courtside/internal/store"
)

// Fetcher pulls everything a replay needs for one match.
type Fetcher interface {
	FetchMatch(ctx context.Context, matchID string) (*pbp.MatchInput, error)
}

// Cache fronts the store for hot reads. Optional.
type Cache interface {
	SetBundle(ctx context.Context, bundle *pbp.Bundle) error
	InvalidateBundle(ctx context.Context, matchID string) error
}

// Publisher announces finished matches downstream. Optional.
type Publisher interface {
	PublishMatchResult(ctx context.Context, bundle *pbp.Bundle) error
	PublishVerification(ctx context.Context, report *reconciliation.Report) error
}

// Config wires a Processor. Fetcher and Store are required; the rest
// degrade gracefully when nil.
type Config struct {
	Fetcher    Fetcher
	Store      store.Store
	Verifier   *reconciliation.Engine
	Cache      Cache
	Publisher  Publisher
	Replay     pbp.Config
	Classifier pbp.TextClassifier
}

// Processor runs the match pipeline.
type Processor struct {
	cfg Config
}

// New validates the wiring and returns a processor.
func New(cfg Config) (*Processor, error) {
	if cfg.Fetcher == nil {
		return nil, fmt.Errorf("processor: fetcher is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("processor: store is required")
	}
	if cfg.Replay == (pbp.Config{}) {
		cfg.Replay = pbp.DefaultConfig()
	}
	return &Processor{cfg: cfg}, nil
}

// Outcome reports what Process did for one match.
type Outcome struct {
	MatchID string                 `json:"match_id"`
	Skipped bool                   `json:"skipped"`
	Bundle  *pbp.Bundle            `json:"bundle,omitempty"`
	Report  *reconciliation.Report `json:"report,omitempty"`
}

// Process runs the pipeline for one match. Already-stored matches are
// skipped unless force is set; forcing reprocesses and invalidates the cache.
func (p *Processor) Process(ctx context.Context, matchID string, force bool) (*Outcome, error) {
	if !force {
		stored, err := p.cfg.Store.HasMatch(ctx, matchID)
		if err != nil {
			return nil, fmt.Errorf("check match %s: %w", matchID, err)
		}
		if stored {
			log.Printf("[processor] Match %s already stored, skipping", matchID)
			return &Outcome{MatchID: matchID, Skipped: true}, nil
		}
	}

	in, err := p.cfg.Fetcher.FetchMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("fetch match %s: %w", matchID, err)
	}

	res, err := pbp.ReplayWithConfig(in, p.cfg.Replay, p.cfg.Classifier)
	if err != nil {
		return nil, fmt.Errorf("replay match %s: %w", matchID, err)
	}
	bundle := res.Bundle()

	var report *reconciliation.Report
	if p.cfg.Verifier != nil {
		report = p.cfg.Verifier.Verify(res, in.OfficialBox, in.OfficialSummary)
		if report.Clean {
			log.Printf("[processor] ✓ Match %s verified clean", matchID)
		} else {
			log.Printf("[processor] ⚠️  Match %s: %s", matchID, report.Summary())
		}
	}

	if err := p.cfg.Store.SaveResult(ctx, bundle, report); err != nil {
		return nil, fmt.Errorf("save match %s: %w", matchID, err)
	}

	// Cache and stream fan-out are best effort; the stored row is the truth.
	if p.cfg.Cache != nil {
		if err := p.cfg.Cache.SetBundle(ctx, bundle); err != nil {
			log.Printf("[processor] ⚠️  Failed to cache match %s: %v", matchID, err)
		}
	}
	if p.cfg.Publisher != nil {
		if err := p.cfg.Publisher.PublishMatchResult(ctx, bundle); err != nil {
			log.Printf("[processor] ⚠️  Failed to publish match %s: %v", matchID, err)
		}
		if report != nil {
			if err := p.cfg.Publisher.PublishVerification(ctx, report); err != nil {
				log.Printf("[processor] ⚠️  Failed to publish verification for %s: %v", matchID, err)
			}
		}
	}

	return &Outcome{MatchID: matchID, Bundle: bundle, Report: report}, nil
}
