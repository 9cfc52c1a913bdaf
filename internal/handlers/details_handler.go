package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitesmith/internal/interfaces"
	"github.com/ternarybob/sitesmith/internal/services/intent"
)

// DetailsHandler previews the branding the pipeline would extract from an
// intent, without starting a job
type DetailsHandler struct {
	extractor *intent.DetailsExtractor
	logger    arbor.ILogger
}

// NewDetailsHandler creates a details handler
func NewDetailsHandler(client interfaces.TextClient, logger arbor.ILogger) *DetailsHandler {
	return &DetailsHandler{
		extractor: intent.NewDetailsExtractor(client, logger),
		logger:    logger,
	}
}

type detailsRequest struct {
	Intent string `json:"intent"`
	Model  string `json:"model,omitempty"`
}

// ExtractDetailsHandler handles POST /api/details
func (h *DetailsHandler) ExtractDetailsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req detailsRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Intent == "" {
		WriteError(w, http.StatusBadRequest, "intent is required")
		return
	}

	details := h.extractor.Extract(r.Context(), req.Intent, req.Model)
	WriteJSON(w, http.StatusOK, details)
}
