package app

import (
	"context"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitesmith/internal/common"
	"github.com/ternarybob/sitesmith/internal/handlers"
	"github.com/ternarybob/sitesmith/internal/interfaces"
	"github.com/ternarybob/sitesmith/internal/jobs"
	"github.com/ternarybob/sitesmith/internal/services/llm"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Shared AI client (provider factory behind the TextClient interface)
	TextClient interfaces.TextClient

	// Job state and pipeline
	JobStore     interfaces.JobStore
	Orchestrator *jobs.Orchestrator

	// HTTP handlers
	APIHandler      *handlers.APIHandler
	GenerateHandler *handlers.GenerateHandler
	JobHandler      *handlers.JobHandler
	DetailsHandler  *handlers.DetailsHandler
	WSHandler       *handlers.WebSocketHandler
}

// New wires the application from resolved configuration
func New(cfg *common.Config, logger arbor.ILogger) *App {
	client := llm.NewProviderFactory(&cfg.Gemini, &cfg.Claude, &cfg.LLM, logger)
	store := jobs.NewStore(cfg.Jobs.LogCap)
	orchestrator := jobs.NewOrchestrator(cfg, store, client, logger)

	return &App{
		Config:          cfg,
		Logger:          logger,
		TextClient:      client,
		JobStore:        store,
		Orchestrator:    orchestrator,
		APIHandler:      handlers.NewAPIHandler(logger),
		GenerateHandler: handlers.NewGenerateHandler(orchestrator, logger),
		JobHandler:      handlers.NewJobHandler(store, orchestrator, logger),
		DetailsHandler:  handlers.NewDetailsHandler(client, logger),
		WSHandler:       handlers.NewWebSocketHandler(store, logger),
	}
}

// Shutdown releases held resources. In-flight jobs keep their goroutines
// until the process exits; their state stays pollable to the end.
func (a *App) Shutdown(ctx context.Context) error {
	a.Logger.Info().Msg("Shutting down application")
	return a.TextClient.Close()
}
