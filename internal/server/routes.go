package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Generation
	mux.HandleFunc("/api/generate", s.app.GenerateHandler.GenerateWebsiteHandler) // POST - start a generation job
	mux.HandleFunc("/api/details", s.app.DetailsHandler.ExtractDetailsHandler)    // POST - preview extracted branding

	// API routes - Jobs
	mux.HandleFunc("/api/jobs", s.app.JobHandler.ListJobsHandler)   // GET - list all jobs
	mux.HandleFunc("/api/jobs/", s.app.JobHandler.JobRoutesHandler) // GET /{id}, GET /{id}/logs, POST /{id}/pages

	// WebSocket route - live job log streaming
	mux.HandleFunc("/ws/jobs/", s.app.WSHandler.StreamJobLogsHandler)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// Fallback
	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}
