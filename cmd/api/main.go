// Package main is the entry point for the API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/aptiva-ai/rental-platform/internal/agent"
	"github.com/aptiva-ai/rental-platform/internal/config"
	"github.com/aptiva-ai/rental-platform/internal/handler"
	"github.com/aptiva-ai/rental-platform/internal/listings"
	"github.com/aptiva-ai/rental-platform/internal/llm"
	"github.com/aptiva-ai/rental-platform/internal/maps"
	"github.com/aptiva-ai/rental-platform/internal/middleware"
	natsclient "github.com/aptiva-ai/rental-platform/internal/nats"
	"github.com/aptiva-ai/rental-platform/internal/service"
	"github.com/aptiva-ai/rental-platform/internal/store"
	"github.com/aptiva-ai/rental-platform/pkg/logger"
	"github.com/aptiva-ai/rental-platform/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "rental-platform", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Connect to NATS
	natsClient, err := natsclient.Connect(ctx, natsclient.Config{
		URL:      cfg.NATSURL,
		CAFile:   cfg.NATSCAFile,
		CertFile: cfg.NATSCertFile,
		KeyFile:  cfg.NATSKeyFile,
		Token:    cfg.NATSToken,
	}, log)
	if err != nil {
		log.Error("failed to connect to NATS", zap.Error(err))
		os.Exit(1)
	}
	defer natsClient.Close()

	// Ensure the conversation journal stream exists
	journal := natsclient.NewJournal(natsClient)
	if err := journal.EnsureStream(ctx); err != nil {
		log.Error("failed to ensure stream", zap.Error(err))
		os.Exit(1)
	}

	// Initialize LLM client
	provider := llm.Provider(cfg.DefaultLLM)
	apiKey := cfg.OpenAIAPIKey
	if provider == llm.ProviderAnthropic || (apiKey == "" && cfg.AnthropicAPIKey != "") {
		provider = llm.ProviderAnthropic
		apiKey = cfg.AnthropicAPIKey
	}
	llmClient, err := llm.NewClient(provider, apiKey)
	if err != nil {
		log.Error("failed to create LLM client", zap.Error(err))
		os.Exit(1)
	}

	// Initialize the listing scraper client
	fetcher, err := listings.NewClient(listings.Options{
		BaseURL:    cfg.ScraperBaseURL,
		APIToken:   cfg.ScraperAPIToken,
		ActorID:    cfg.ScraperActorID,
		Timeout:    cfg.ScraperTimeout,
		MaxRetries: cfg.ScraperMaxRetries,
	}, log)
	if err != nil {
		log.Error("failed to create listings client", zap.Error(err))
		os.Exit(1)
	}

	// POI enrichment is optional; skipped without an API key
	var enricher *maps.Enricher
	if cfg.GoogleMapsAPIKey != "" {
		enricher, err = maps.NewEnricher(cfg.GoogleMapsAPIKey, log)
		if err != nil {
			log.Warn("failed to create maps enricher, POI enrichment disabled", zap.Error(err))
			enricher = nil
		}
	}

	// Initialize the agent
	orchestrator := agent.NewOrchestrator(llmClient, fetcher, enricher, agent.Models{
		Extraction: cfg.ExtractionModel,
		Reply:      cfg.ReplyModel,
	}, agent.DefaultConfig(), log)
	session := agent.NewSession(orchestrator, log)

	// Initialize services
	st := store.NewMemoryStore()
	conversationSvc := service.NewConversationService(st, log)
	chatSvc := service.NewChatService(st, journal, conversationSvc, session, log)
	leaseSvc := service.NewLeaseService(st, conversationSvc, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(natsClient)
	conversationHandler := handler.NewConversationHandler(conversationSvc, log)
	chatHandler := handler.NewChatHandler(chatSvc, log)
	streamHandler := handler.NewStreamHandler(chatSvc, conversationSvc, journal, log)
	leaseHandler := handler.NewLeaseHandler(leaseSvc, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS())

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes with authentication
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		// Chat turns
		r.Post("/chat", chatHandler.Chat)
		r.Post("/chat/stream", streamHandler.Chat)

		// Conversations
		r.Route("/conversations", func(r chi.Router) {
			r.Post("/", conversationHandler.Create)
			r.Get("/", conversationHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", conversationHandler.Get)
				r.Delete("/", conversationHandler.Delete)

				// Transcript
				r.Get("/messages", chatHandler.ListMessages)
				r.Get("/stream", streamHandler.Replay)

				// Lease drafts
				r.Get("/lease-drafts", leaseHandler.List)
				r.Get("/lease-drafts/latest", leaseHandler.Latest)
			})
		})

		// Lease drafts by ID
		r.Get("/lease-drafts/{draftID}", leaseHandler.Get)
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
