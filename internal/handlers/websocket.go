package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitesmith/internal/interfaces"
)

// logPollInterval is how often the socket checks the store for new entries
const logPollInterval = 500 * time.Millisecond

// WebSocketHandler streams a job's log ring over a websocket so UIs can
// follow a generation live instead of polling the logs endpoint.
type WebSocketHandler struct {
	store    interfaces.JobStore
	upgrader websocket.Upgrader
	logger   arbor.ILogger
}

// NewWebSocketHandler creates a websocket log handler
func NewWebSocketHandler(store interfaces.JobStore, logger arbor.ILogger) *WebSocketHandler {
	return &WebSocketHandler{
		store: store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// StreamJobLogsHandler handles GET /ws/jobs/{id}/logs. Entries already in
// the ring are sent immediately; new entries follow as the pipeline emits
// them. The stream closes once the job reaches a terminal state and all
// entries have been delivered.
func (h *WebSocketHandler) StreamJobLogsHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/ws/jobs/")
	jobID := strings.TrimSuffix(strings.Trim(rest, "/"), "/logs")
	if jobID == "" {
		WriteError(w, http.StatusBadRequest, "Missing job ID")
		return
	}

	if _, ok := h.store.GetJob(jobID); !ok {
		WriteError(w, http.StatusNotFound, "Job not found: "+jobID)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	h.logger.Debug().Str("job_id", jobID).Msg("Log stream opened")

	sent := 0
	ticker := time.NewTicker(logPollInterval)
	defer ticker.Stop()

	for {
		logs := h.store.GetLogs(jobID)
		for ; sent < len(logs); sent++ {
			if err := conn.WriteJSON(logs[sent]); err != nil {
				h.logger.Debug().Err(err).Str("job_id", jobID).Msg("Log stream client gone")
				return
			}
		}

		job, ok := h.store.GetJob(jobID)
		if !ok || (job.IsTerminal() && sent >= len(h.store.GetLogs(jobID))) {
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "job finished"))
			return
		}

		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}
