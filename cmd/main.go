package main

import (
	"fmt"
	"os"

	redisclient "github.com/eduforge/lms-backend/internal/clients/redis"
	"github.com/eduforge/lms-backend/internal/config"
	"github.com/eduforge/lms-backend/internal/data/db"
	"github.com/eduforge/lms-backend/internal/data/index"
	"github.com/eduforge/lms-backend/internal/generation"
	"github.com/eduforge/lms-backend/internal/http/handlers"
	"github.com/eduforge/lms-backend/internal/pkg/logger"
	"github.com/eduforge/lms-backend/internal/platform/openai"
	"github.com/eduforge/lms-backend/internal/server"
	"github.com/eduforge/lms-backend/internal/services"
)

func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Could not load config", "error", err)
		os.Exit(1)
	}

	// Postgres (document index)
	postgresService, err := db.NewPostgresService(log, cfg.Postgres)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()
	if err := thePG.AutoMigrate(&index.Document{}, &index.DocumentChunk{}); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	docIndex := index.NewPostgresIndex(thePG, log)

	// External services
	openaiClient, err := openai.NewClient(log, cfg.OpenAI)
	if err != nil {
		log.Error("Could not init OpenAIClient", "error", err)
		os.Exit(1)
	}

	// Redis embedding cache is optional; a nil cache is a no-op.
	var embedCache *redisclient.EmbedCache
	if cfg.Redis.Addr != "" {
		embedCache, err = redisclient.NewEmbedCache(log, cfg.Redis.Addr)
		if err != nil {
			log.Warn("Redis embed cache unavailable", "error", err)
			embedCache = nil
		}
	}
	embedder := services.NewCachedEmbedder(log, openaiClient, embedCache, cfg.OpenAI.EmbedModel)

	// Engine
	renderer, err := generation.NewPageRenderer(cfg.Render)
	if err != nil {
		log.Error("Could not init PageRenderer", "error", err)
		os.Exit(1)
	}
	engine, err := generation.NewEngine(log, openaiClient, embedder, docIndex, renderer, generation.Config{
		AcceptScore:    cfg.Workflow.AcceptScore,
		MaxAttempts:    cfg.Workflow.MaxAttempts,
		RetrievalLimit: cfg.Workflow.RetrievalLimit,
	})
	if err != nil {
		log.Error("Could not init generation engine", "error", err)
		os.Exit(1)
	}

	summarizer := services.NewSummarizerService(log, openaiClient, docIndex)

	// Handlers + router
	generationHandler := handlers.NewGenerationHandler(log, engine)
	summarizeHandler := handlers.NewSummarizeHandler(log, summarizer)

	router := server.NewRouter(server.RouterConfig{
		CORSOrigins:       cfg.Server.CORSOrigins,
		GenerationHandler: generationHandler,
		SummarizeHandler:  summarizeHandler,
	})

	log.Info("Starting server", "addr", cfg.Server.Addr)
	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
