package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fortuna/courtside/internal/pbp"
	"github.com/fortuna/courtside/internal/reconciliation"
	"github.com/fortuna/courtside/internal/store"
	"github.com/gorilla/mux"
)

func testRouter(t *testing.T) (*mux.Router, store.Store) {
	t.Helper()
	st, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	handler := NewHandler(st)
	router := mux.NewRouter()
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/matches", handler.ListMatches).Methods("GET")
	api.HandleFunc("/matches/{matchID}", handler.GetMatch).Methods("GET")
	api.HandleFunc("/matches/{matchID}", handler.DeleteMatch).Methods("DELETE")
	api.HandleFunc("/matches/{matchID}/report", handler.GetMatchReport).Methods("GET")
	api.HandleFunc("/matches/{matchID}/boxscore", handler.GetMatchBoxScore).Methods("GET")
	api.HandleFunc("/matches/{matchID}/advanced", handler.GetMatchAdvanced).Methods("GET")
	return router, st
}

func storedBundle(matchID string) *pbp.Bundle {
	return &pbp.Bundle{
		MatchID:   matchID,
		MatchDate: "2026-02-14",
		Teams:     map[pbp.Side]string{pbp.SideHome: "Hornets", pbp.SideAway: "Falcons"},
		Players: []pbp.PlayerLine{
			{Name: "Alder", Jersey: "1", Team: "Hornets", Side: pbp.SideHome,
				Minutes: "40:00", Stats: map[string]float64{"PTS": 21}},
		},
		TeamTotals: map[pbp.Side]pbp.TeamLine{
			pbp.SideHome: {Name: "Hornets", Side: pbp.SideHome, Stats: map[string]float64{"PTS": 63}},
			pbp.SideAway: {Name: "Falcons", Side: pbp.SideAway, Stats: map[string]float64{"PTS": 58}},
		},
		GeneratedAt: time.Now().UTC(),
	}
}

func doRequest(t *testing.T, router *mux.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	router, _ := testRouter(t)
	rec := doRequest(t, router, "GET", "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "healthy") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGetMatch(t *testing.T) {
	router, st := testRouter(t)
	if err := st.SaveResult(context.Background(), storedBundle("m1"), nil); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(t, router, "GET", "/api/v1/matches/m1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var bundle pbp.Bundle
	if err := json.Unmarshal(rec.Body.Bytes(), &bundle); err != nil {
		t.Fatal(err)
	}
	if bundle.MatchID != "m1" || len(bundle.Players) != 1 {
		t.Errorf("bundle = %+v", bundle)
	}

	if rec := doRequest(t, router, "GET", "/api/v1/matches/missing"); rec.Code != http.StatusNotFound {
		t.Errorf("missing match status = %d", rec.Code)
	}
}

func TestGetMatchReport(t *testing.T) {
	router, st := testRouter(t)
	ctx := context.Background()

	report := &reconciliation.Report{MatchID: "m1", Clean: true, CheckedPlayers: 1}
	if err := st.SaveResult(ctx, storedBundle("m1"), report); err != nil {
		t.Fatal(err)
	}
	if err := st.SaveResult(ctx, storedBundle("m2"), nil); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(t, router, "GET", "/api/v1/matches/m1/report")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got reconciliation.Report
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if !got.Clean {
		t.Errorf("report = %+v", got)
	}

	// A match processed without an official box has no report.
	if rec := doRequest(t, router, "GET", "/api/v1/matches/m2/report"); rec.Code != http.StatusNotFound {
		t.Errorf("reportless match status = %d", rec.Code)
	}
}

func TestListMatches(t *testing.T) {
	router, st := testRouter(t)
	ctx := context.Background()
	for _, id := range []string{"m1", "m2", "m3"} {
		if err := st.SaveResult(ctx, storedBundle(id), nil); err != nil {
			t.Fatal(err)
		}
	}

	rec := doRequest(t, router, "GET", "/api/v1/matches?limit=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Matches []store.MatchSummary `json:"matches"`
		Count   int                  `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 2 || len(resp.Matches) != 2 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestDeleteMatch(t *testing.T) {
	router, st := testRouter(t)
	if err := st.SaveResult(context.Background(), storedBundle("m1"), nil); err != nil {
		t.Fatal(err)
	}

	if rec := doRequest(t, router, "DELETE", "/api/v1/matches/m1"); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ok, _ := st.HasMatch(context.Background(), "m1"); ok {
		t.Error("match still stored after delete")
	}
	if rec := doRequest(t, router, "DELETE", "/api/v1/matches/m1"); rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", rec.Code)
	}
}

func TestGetMatchBoxScore(t *testing.T) {
	router, st := testRouter(t)
	if err := st.SaveResult(context.Background(), storedBundle("m1"), nil); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(t, router, "GET", "/api/v1/matches/m1/boxscore")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		MatchID string                    `json:"match_id"`
		Players []pbp.PlayerLine          `json:"players"`
		Totals  map[pbp.Side]pbp.TeamLine `json:"team_totals"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.MatchID != "m1" || len(resp.Players) != 1 || resp.Players[0].Name != "Alder" {
		t.Errorf("resp = %+v", resp)
	}
	if pbp.StatValue(resp.Totals[pbp.SideHome].Stats, "PTS") != 63 {
		t.Errorf("totals = %+v", resp.Totals)
	}
}

func TestGetMatchAdvancedFiltersCountingStats(t *testing.T) {
	router, st := testRouter(t)
	bundle := storedBundle("m1")
	bundle.Players[0].Stats["TS%"] = 61.4
	if err := st.SaveResult(context.Background(), bundle, nil); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(t, router, "GET", "/api/v1/matches/m1/advanced")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Players []struct {
			Name    string             `json:"name"`
			Metrics map[string]float64 `json:"metrics"`
		} `json:"players"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Players) != 1 {
		t.Fatalf("players = %+v", resp.Players)
	}
	metrics := resp.Players[0].Metrics
	if metrics["TS%"] != 61.4 {
		t.Errorf("metrics = %v", metrics)
	}
	if _, ok := metrics["PTS"]; ok {
		t.Errorf("counting stat leaked into advanced view: %v", metrics)
	}
}
