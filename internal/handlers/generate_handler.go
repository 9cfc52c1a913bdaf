package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitesmith/internal/jobs"
	"github.com/ternarybob/sitesmith/internal/models"
)

// GenerateHandler accepts website generation requests and hands them to the
// orchestrator. The response is immediate; clients poll the job endpoints
// for progress.
type GenerateHandler struct {
	orchestrator *jobs.Orchestrator
	validate     *validator.Validate
	logger       arbor.ILogger
}

// NewGenerateHandler creates a generate handler
func NewGenerateHandler(orchestrator *jobs.Orchestrator, logger arbor.ILogger) *GenerateHandler {
	return &GenerateHandler{
		orchestrator: orchestrator,
		validate:     validator.New(),
		logger:       logger,
	}
}

// GenerateWebsiteHandler handles POST /api/generate
func (h *GenerateHandler) GenerateWebsiteHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req models.GenerateRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	job := h.orchestrator.StartGeneration(&req)

	h.logger.Info().
		Str("job_id", job.ID).
		Str("intent", req.Intent).
		Msg("Generation job accepted")

	WriteJSON(w, http.StatusAccepted, map[string]interface{}{
		"status": "started",
		"job_id": job.ID,
		"job":    job,
	})
}
