package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/macie2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/user/macie-relay/internal/adapter/api"
	ebrepo "github.com/user/macie-relay/internal/adapter/repository/eventbridge"
	macierepo "github.com/user/macie-relay/internal/adapter/repository/macie"
	"github.com/user/macie-relay/internal/adapter/metrics"
	"github.com/user/macie-relay/internal/pkg/config"
	"github.com/user/macie-relay/internal/pkg/logger"
	"github.com/user/macie-relay/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- AWS Clients ---
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.AWSRegion != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}
	macieClient := macie2.NewFromConfig(awsCfg)
	ebClient := eventbridge.NewFromConfig(awsCfg)

	// --- Initialize Repositories ---
	registry := prometheus.NewRegistry()
	m := metrics.NewPipelineMetrics(registry)
	jobs := macierepo.NewJobRepository(macieClient, log)
	bus := ebrepo.NewBusRepository(ebClient, log)
	findings := macierepo.NewFindingRepository(macieClient, cfg.MacieAPIRPS, log)

	// --- Initialize Use Cases ---
	findingsUseCase := usecase.NewGetFindingsUseCase(findings, m, log)
	createJobUseCase := usecase.NewCreateJobUseCase(jobs, bus, m, log, cfg.DestinationTagKey)

	// --- Initialize HTTP Server ---
	router := api.NewRouter(log, registry, findingsUseCase, createJobUseCase)
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}

	log.Info("server shut down gracefully")
}
