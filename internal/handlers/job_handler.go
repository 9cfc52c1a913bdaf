package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitesmith/internal/interfaces"
	"github.com/ternarybob/sitesmith/internal/jobs"
	"github.com/ternarybob/sitesmith/internal/models"
)

// JobHandler serves job status, job logs, and after-the-fact page additions
type JobHandler struct {
	store        interfaces.JobStore
	orchestrator *jobs.Orchestrator
	validate     *validator.Validate
	logger       arbor.ILogger
}

// NewJobHandler creates a job handler
func NewJobHandler(store interfaces.JobStore, orchestrator *jobs.Orchestrator, logger arbor.ILogger) *JobHandler {
	return &JobHandler{
		store:        store,
		orchestrator: orchestrator,
		validate:     validator.New(),
		logger:       logger,
	}
}

// ListJobsHandler handles GET /api/jobs
func (h *JobHandler) ListJobsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs": h.store.ListJobs(),
	})
}

// JobRoutesHandler dispatches /api/jobs/{id}, /api/jobs/{id}/logs, and
// /api/jobs/{id}/pages
func (h *JobHandler) JobRoutesHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
	parts := strings.SplitN(strings.Trim(rest, "/"), "/", 2)
	if parts[0] == "" {
		WriteError(w, http.StatusBadRequest, "Missing job ID")
		return
	}

	jobID := parts[0]
	sub := ""
	if len(parts) > 1 {
		sub = parts[1]
	}

	switch sub {
	case "":
		h.getJob(w, r, jobID)
	case "logs":
		h.getJobLogs(w, r, jobID)
	case "pages":
		h.addPage(w, r, jobID)
	default:
		WriteError(w, http.StatusNotFound, "Unknown job resource: "+sub)
	}
}

func (h *JobHandler) getJob(w http.ResponseWriter, r *http.Request, jobID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	job, ok := h.store.GetJob(jobID)
	if !ok {
		WriteError(w, http.StatusNotFound, "Job not found: "+jobID)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

func (h *JobHandler) getJobLogs(w http.ResponseWriter, r *http.Request, jobID string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if _, ok := h.store.GetJob(jobID); !ok {
		WriteError(w, http.StatusNotFound, "Job not found: "+jobID)
		return
	}

	logs := h.store.GetLogs(jobID)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"job_id": jobID,
		"count":  len(logs),
		"logs":   logs,
	})
}

func (h *JobHandler) addPage(w http.ResponseWriter, r *http.Request, jobID string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.AddPageRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	path, err := h.orchestrator.GeneratePage(context.Background(), jobID, &req)
	if err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "unknown job") {
			status = http.StatusNotFound
		} else if strings.Contains(err.Error(), "completed") {
			status = http.StatusConflict
		}
		WriteError(w, status, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status": "success",
		"job_id": jobID,
		"path":   path,
	})
}
