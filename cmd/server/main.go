package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelar/memora/internal/api"
	"github.com/avelar/memora/internal/config"
	"github.com/avelar/memora/internal/db"
	"github.com/avelar/memora/internal/logger"
	"github.com/avelar/memora/internal/mastery"
	"github.com/avelar/memora/internal/repository/sqlite"
	"github.com/avelar/memora/internal/review"
	"github.com/avelar/memora/internal/services"
	"github.com/avelar/memora/internal/srs"
	"github.com/avelar/memora/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("Memora Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("stats_worker_count=%d", cfg.StatsWorkerCount)
	log.Debug("stats_queue_size=%d", cfg.StatsQueueSize)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize core engines
	scheduler, err := srs.New(srs.Config{
		TargetRetention: cfg.TargetRetention,
		DecayExponent:   cfg.DecayExponent,
		LapsePenalty:    cfg.LapsePenalty,
		SeedStability:   cfg.SeedStability,
	})
	if err != nil {
		log.Error("invalid scheduler configuration: %v", err)
		os.Exit(1)
	}
	engine, err := mastery.NewEngine(mastery.Config{
		FragileCutoff:    cfg.FragileCutoff,
		DevelopingCutoff: cfg.DevelopingCutoff,
		SolidCutoff:      cfg.SolidCutoff,
		MasteredCutoff:   cfg.MasteredCutoff,
	})
	if err != nil {
		log.Error("invalid mastery configuration: %v", err)
		os.Exit(1)
	}

	// Initialize repositories
	learnerRepo := sqlite.NewLearnerRepository(database.DB)
	projectRepo := sqlite.NewProjectRepository(database.DB)
	conceptRepo := sqlite.NewConceptRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	recordRepo := sqlite.NewRecordRepository(database.DB)
	masteryRepo := sqlite.NewMasteryRepository(database.DB)

	// Initialize worker pool for background stats refresh
	statsPool := worker.NewPool(cfg.StatsWorkerCount, cfg.StatsQueueSize)

	// Initialize services
	learnerService := services.NewLearnerService(learnerRepo)
	projectService := services.NewProjectService(projectRepo, learnerRepo)
	conceptService := services.NewConceptService(conceptRepo, projectRepo, cardRepo, masteryRepo, scheduler)
	reviewService := services.NewReviewService(cardRepo, recordRepo, masteryRepo, scheduler, engine)
	queueService := services.NewQueueService(cardRepo, review.NewManager())
	masteryService := services.NewMasteryService(masteryRepo, conceptRepo)
	gapService := services.NewGapService()

	srv := &api.Server{
		DB:             database.DB,
		LearnerService: learnerService,
		ProjectService: projectService,
		ConceptService: conceptService,
		ReviewService:  reviewService,
		QueueService:   queueService,
		MasteryService: masteryService,
		GapService:     gapService,
		Masteries:      masteryRepo,
		StatsPool:      statsPool,
	}

	ctx, cancel := context.WithCancel(context.Background())
	statsPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping worker pool")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	statsPool.Stop()

	log.Info("===========================================")
	log.Info("Memora Server Stopped")
	log.Info("===========================================")
}
