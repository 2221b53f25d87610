package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fortuna/courtside/internal/ingest/genius"
	"github.com/fortuna/courtside/internal/pbp"
	"github.com/fortuna/courtside/internal/processor"
	"github.com/fortuna/courtside/internal/reconciliation"
	"github.com/fortuna/courtside/internal/report"
	"github.com/fortuna/courtside/internal/store"
)

var (
	processForce       bool
	processCompetition int
	processTolerance   int
	processDelay       time.Duration
)

var processCmd = &cobra.Command{
	Use:   "process <match-id>...",
	Short: "Fetch, replay and store one or more matches",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProcess,
}

func init() {
	processCmd.Flags().BoolVar(&processForce, "force", false, "reprocess even if already stored")
	processCmd.Flags().IntVar(&processCompetition, "competition", 0, "competition ID (skips the probe)")
	processCmd.Flags().IntVar(&processTolerance, "tolerance", 0, "absolute per-stat delta to tolerate during verification")
	processCmd.Flags().DurationVar(&processDelay, "delay", 0, "pause between matches (e.g. 2s)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	ingester := genius.NewIngester()
	if processCompetition != 0 {
		ingester = genius.NewIngesterWithClient(genius.NewClient(), []int{processCompetition})
	}

	proc, err := processor.New(processor.Config{
		Fetcher:  ingester,
		Store:    db,
		Verifier: reconciliation.NewEngine(processTolerance),
	})
	if err != nil {
		return err
	}

	return processMatches(cmd.Context(), proc, os.Stdout, args)
}

// processMatches runs each match through the pipeline. One broken match
// must not sink the rest of the batch: failures are logged and counted,
// and the error reports the tally once every match has had its turn.
func processMatches(ctx context.Context, proc *processor.Processor, w io.Writer, matchIDs []string) error {
	var failed int
	for i, matchID := range matchIDs {
		if i > 0 && processDelay > 0 {
			time.Sleep(processDelay)
		}
		fmt.Fprintf(w, "Processing match %s...\n", matchID)
		out, err := proc.Process(ctx, matchID, processForce)
		if err != nil {
			log.Printf("⚠️  Match %s failed: %v", matchID, err)
			failed++
			continue
		}
		if out.Skipped {
			fmt.Fprintf(w, "Match %s already stored, use --force to reprocess\n", matchID)
			continue
		}

		report.PrintMatchSummary(w, out.Bundle)
		for _, side := range pbp.Sides {
			report.PrintPlayerTable(w, out.Bundle, side)
		}
		report.PrintTeamTable(w, out.Bundle)
		if out.Report != nil {
			report.PrintVerificationReport(w, out.Report)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d matches failed", failed, len(matchIDs))
	}
	return nil
}
