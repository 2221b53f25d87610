package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/fortuna/courtside/internal/store"
	"github.com/gorilla/mux"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	store store.Store
}

// NewHandler creates a new handler
func NewHandler(st store.Store) *Handler {
	return &Handler{store: st}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "courtside",
		"version": "1.0.0",
	})
}

// ListMatches returns the most recently processed matches
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	limit := 20 // default
	if limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 200 {
			limit = l
		}
	}

	matches, err := h.store.ListMatches(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list matches", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"matches": matches,
		"count":   len(matches),
	})
}

// GetMatch returns the full stat bundle for a processed match
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["matchID"]

	bundle, _, err := h.store.GetResult(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Match not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch match", err)
		return
	}

	respondJSON(w, http.StatusOK, bundle)
}

// GetMatchReport returns the verification report for a processed match
func (h *Handler) GetMatchReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["matchID"]

	_, report, err := h.store.GetResult(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Match not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch report", err)
		return
	}
	if report == nil {
		respondError(w, http.StatusNotFound, "Match was processed without an official box score", nil)
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// GetMatchBoxScore returns the player lines and team totals of a match
func (h *Handler) GetMatchBoxScore(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["matchID"]

	bundle, _, err := h.store.GetResult(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Match not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch match", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"match_id":    bundle.MatchID,
		"teams":       bundle.Teams,
		"players":     bundle.Players,
		"team_totals": bundle.TeamTotals,
	})
}

// derivedStatKeys are the computed-metric columns of a stat map; everything
// else is a counting stat.
var derivedStatKeys = []string{
	"FG%", "2P%", "3P%", "FT%", "eFG%", "TS%",
	"OFFRTG", "DEFRTG", "NETRTG",
	"USG%", "AST%", "OREB%", "DREB%", "REB%",
	"AST/TO", "AST RATIO", "TO RATIO",
	"PIE", "GmScr", "FIC", "Eff",
	"PACE", "FT RATE",
}

func derivedOnly(stats map[string]float64) map[string]float64 {
	out := make(map[string]float64)
	for _, key := range derivedStatKeys {
		if v, ok := stats[key]; ok {
			out[key] = v
		}
	}
	return out
}

// GetMatchAdvanced returns only the derived metrics of a match
func (h *Handler) GetMatchAdvanced(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["matchID"]

	bundle, _, err := h.store.GetResult(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Match not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to fetch match", err)
		return
	}

	players := make([]map[string]interface{}, 0, len(bundle.Players))
	for _, p := range bundle.Players {
		players = append(players, map[string]interface{}{
			"name":    p.Name,
			"jersey":  p.Jersey,
			"team":    p.Team,
			"side":    p.Side,
			"metrics": derivedOnly(p.Stats),
		})
	}

	teams := make(map[string]interface{}, len(bundle.TeamTotals))
	for side, t := range bundle.TeamTotals {
		teams[string(side)] = map[string]interface{}{
			"name":    t.Name,
			"metrics": derivedOnly(t.Stats),
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"match_id": bundle.MatchID,
		"players":  players,
		"teams":    teams,
	})
}

// DeleteMatch removes a stored match so it can be reprocessed from scratch
func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	matchID := vars["matchID"]

	if err := h.store.DeleteMatch(r.Context(), matchID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Match not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to delete match", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Match deleted",
		"match_id": matchID,
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
