package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fortuna/courtside/internal/batch"
)

// JobHandler proxies API calls to the batch service.
type JobHandler struct {
	service *batch.Service
}

// NewJobHandler wires the REST layer to the batch service.
func NewJobHandler(service *batch.Service) *JobHandler {
	return &JobHandler{service: service}
}

type apiJobRequest struct {
	MatchID      string   `json:"match_id"`
	MatchIDs     []string `json:"match_ids"`
	Force        bool     `json:"force"`
	DryRun       bool     `json:"dry_run"`
	DelaySeconds int      `json:"delay_seconds"`
}

// HandleEnqueue handles POST /api/v1/jobs
func (h *JobHandler) HandleEnqueue(w http.ResponseWriter, r *http.Request) {
	var req apiJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	spec := batch.JobSpec{
		Force:  req.Force,
		DryRun: req.DryRun,
		Delay:  time.Duration(req.DelaySeconds) * time.Second,
	}
	if len(req.MatchIDs) > 0 {
		spec.MatchIDs = append(spec.MatchIDs, req.MatchIDs...)
	}
	if req.MatchID != "" {
		spec.MatchIDs = append(spec.MatchIDs, req.MatchID)
	}

	job, err := h.service.Enqueue(spec)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to enqueue job", err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"job": job,
	})
}

// HandleStatus handles GET /api/v1/jobs/status
func (h *JobHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	summary := h.service.Status()

	response := map[string]interface{}{
		"status":  "idle",
		"message": "No active jobs",
		"queued":  summary.Queued,
		"history": summary.History,
	}
	if summary.Queued == nil {
		response["queued"] = []*batch.Job{}
	}
	if summary.History == nil {
		response["history"] = []*batch.Job{}
	}

	if summary.ActiveJob != nil {
		response["status"] = summary.ActiveJob.Status
		if summary.ActiveJob.StatusMessage != "" {
			response["message"] = summary.ActiveJob.StatusMessage
		}
		response["active_job"] = summary.ActiveJob
	}

	respondJSON(w, http.StatusOK, response)
}
