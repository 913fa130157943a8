// Health Trends API
//
// KPI, trend and chart service over a patient's health-data collections.
//
//	@title			Health Trends API
//	@version		1.0
//	@description	Period-over-period KPIs, chart-ready series, lab analytics and AI summaries for patient health data.
//
//	@BasePath	/v1
//
//	@tag.name			dashboard
//	@tag.description	KPIs and chart data
//
//	@tag.name			analytics
//	@tag.description	Lab analytics documents
//
//	@tag.name			summaries
//	@tag.description	Background AI summary jobs
//
//	@tag.name			chat
//	@tag.description	Conversational questions about patient data
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blaisecz/health-trends/internal/api"
	"github.com/blaisecz/health-trends/internal/api/handler"
	"github.com/blaisecz/health-trends/internal/app"
	"github.com/blaisecz/health-trends/internal/config"
	"github.com/blaisecz/health-trends/internal/langfuse"
	"github.com/blaisecz/health-trends/internal/logger"
	"github.com/blaisecz/health-trends/internal/repository"
	"github.com/blaisecz/health-trends/internal/service"
	"github.com/blaisecz/health-trends/internal/telemetry"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.GetLogger()
	if err := log.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		log.WithError(err).Fatal("failed to configure logger")
	}

	ctx := context.Background()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "health-trends-api")
	if err != nil {
		log.WithError(err).Fatal("failed to initialize tracing")
	}

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := config.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	// Jobs interrupted by the previous shutdown can never finish.
	summaryRepo := repository.NewSummaryJobRepository(db)
	if n, err := summaryRepo.FailPending(ctx, "interrupted by restart"); err != nil {
		log.WithError(err).Warn("failed to expire pending summary jobs")
	} else if n > 0 {
		log.WithFields(logger.Fields{"jobs": n}).Info("expired pending summary jobs")
	}

	// Initialize the data pipeline
	pipeline, err := app.NewPipeline(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize provider")
	}

	langfuseClient := langfuse.NewClient(langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
	})
	llmClient := app.NewLLM(ctx, cfg)

	// Initialize services
	summaryService := service.NewSummaryService(summaryRepo, pipeline.Dashboard, llmClient, langfuseClient, cfg.SummaryTimeout)
	chatService := service.NewChatService(pipeline.Dashboard, llmClient)

	// Initialize handlers
	router := api.NewRouter(
		handler.NewDashboardHandler(pipeline.Dashboard),
		handler.NewAnalyticsHandler(pipeline.Analytics),
		handler.NewSummaryHandler(summaryService),
		handler.NewChatHandler(chatService),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logger.Fields{"addr": srv.Addr, "provider": cfg.ProviderMode}).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.WithFields(logger.Fields{"signal": sig.String()}).Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("http shutdown error")
	}
	if err := summaryService.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("summary jobs did not stop in time")
	}
	if err := langfuseClient.Close(shutdownCtx); err != nil {
		log.WithError(err).Error("langfuse events not delivered")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.WithError(err).Error("tracer shutdown error")
	}
	log.Info("server stopped")
}
