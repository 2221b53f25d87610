package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fortuna/courtside/internal/pbp"
	"github.com/fortuna/courtside/internal/reconciliation"
)

func memoryStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testBundle(matchID string, homePts int) *pbp.Bundle {
	return &pbp.Bundle{
		MatchID:   matchID,
		Category:  "U18 Boys",
		MatchDate: "2026-02-14",
		Teams:     map[pbp.Side]string{pbp.SideHome: "Hornets", pbp.SideAway: "Falcons"},
		Players: []pbp.PlayerLine{
			{Name: "Alder", Jersey: "1", Team: "Hornets", Side: pbp.SideHome,
				Minutes: "40:00", Stats: map[string]float64{"PTS": float64(homePts)}},
		},
		TeamTotals: map[pbp.Side]pbp.TeamLine{
			pbp.SideHome: {Name: "Hornets", Side: pbp.SideHome, Stats: map[string]float64{"PTS": float64(homePts)}},
			pbp.SideAway: {Name: "Falcons", Side: pbp.SideAway, Stats: map[string]float64{"PTS": 58}},
		},
		GeneratedAt: time.Now().UTC(),
	}
}

func TestSaveAndGetResult(t *testing.T) {
	s := memoryStore(t)
	ctx := context.Background()

	report := &reconciliation.Report{MatchID: "m1", Clean: true, CheckedPlayers: 1}
	if err := s.SaveResult(ctx, testBundle("m1", 63), report); err != nil {
		t.Fatal(err)
	}

	bundle, got, err := s.GetResult(ctx, "m1")
	if err != nil {
		t.Fatal(err)
	}
	if bundle.MatchID != "m1" || bundle.Teams[pbp.SideHome] != "Hornets" {
		t.Errorf("bundle = %+v", bundle)
	}
	if pbp.StatValue(bundle.Players[0].Stats, "PTS") != 63 {
		t.Errorf("player stats did not round-trip: %v", bundle.Players[0].Stats)
	}
	if got == nil || !got.Clean {
		t.Errorf("report = %+v, want clean", got)
	}
}

func TestGetResultNotFound(t *testing.T) {
	s := memoryStore(t)
	if _, _, err := s.GetResult(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSaveResultUpserts(t *testing.T) {
	s := memoryStore(t)
	ctx := context.Background()

	if err := s.SaveResult(ctx, testBundle("m1", 60), nil); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveResult(ctx, testBundle("m1", 72), nil); err != nil {
		t.Fatalf("reprocessing the same match should upsert: %v", err)
	}

	matches, err := s.ListMatches(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1 after upsert", len(matches))
	}
	if matches[0].HomePoints != 72 {
		t.Errorf("home points = %d, want updated 72", matches[0].HomePoints)
	}
	if matches[0].Verified != nil {
		t.Error("verified should be nil without a report")
	}
}

func TestHasMatch(t *testing.T) {
	s := memoryStore(t)
	ctx := context.Background()

	ok, err := s.HasMatch(ctx, "m1")
	if err != nil || ok {
		t.Fatalf("HasMatch before save = %v, %v", ok, err)
	}
	if err := s.SaveResult(ctx, testBundle("m1", 60), nil); err != nil {
		t.Fatal(err)
	}
	if ok, err = s.HasMatch(ctx, "m1"); err != nil || !ok {
		t.Fatalf("HasMatch after save = %v, %v", ok, err)
	}
}

func TestListMatchesNewestFirst(t *testing.T) {
	s := memoryStore(t)
	ctx := context.Background()

	older := testBundle("m1", 60)
	older.GeneratedAt = time.Now().UTC().Add(-time.Hour)
	newer := testBundle("m2", 70)

	if err := s.SaveResult(ctx, older, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveResult(ctx, newer, nil); err != nil {
		t.Fatal(err)
	}

	matches, err := s.ListMatches(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 || matches[0].MatchID != "m2" {
		t.Errorf("order = %v", matches)
	}

	limited, err := s.ListMatches(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("limit ignored: %d rows", len(limited))
	}
}

func TestDeleteMatch(t *testing.T) {
	s := memoryStore(t)
	ctx := context.Background()

	if err := s.DeleteMatch(ctx, "m1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete missing = %v, want ErrNotFound", err)
	}
	if err := s.SaveResult(ctx, testBundle("m1", 60), nil); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteMatch(ctx, "m1"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := s.HasMatch(ctx, "m1"); ok {
		t.Error("match still present after delete")
	}
}
