package main

import (
	"context"
	"errors"
	"feed-lab/domain"
	"feed-lab/infrastructure/http/server"
	"feed-lab/internal"
	"feed-lab/observability"
	"feed-lab/repositories"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Feed terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// Deferred cleanups (store closing, metrics server) run before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Post store, shared by every operation
	var seed = internal.SeedPosts(time.Now().UTC())
	if !config.SeedPosts {
		seed = nil
	}
	repository, closeStore, err := openStore(log, config.StoreBackend, seed)
	if err != nil {
		return exitRuntime, err
	}
	defer closeStore()

	// 3. Metrics
	var metrics *observability.Metrics
	if config.MetricsEnabled {
		metrics = observability.NewMetrics()
		metricsServer := internal.StartMetricsServer(log, config.MetricsAddress(), metrics.Handler())
		defer func() { _ = metricsServer.Close() }()
	}

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. HTTP Server
	httpServer := &http.Server{
		Addr:         config.Address(),
		Handler:      server.NewRouter(log, repository, metrics),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting feed server", "address", config.Address(),
			"store", config.StoreBackend, "seeded", len(seed), "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 7. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		return exitRuntime, fmt.Errorf("http server shutdown: %w", err)
	}
	log.Info("Program stopped cleanly")
	return exitOK, nil
}

// openStore builds the single post repository for the selected backend.
func openStore(log *slog.Logger, backend string, seed []domain.Post) (repositories.IPostRepository, func(), error) {
	switch backend {
	case internal.StoreBadger:
		repository, err := repositories.NewBadgerPostRepository(log, seed...)
		if err != nil {
			return nil, nil, err
		}
		return repository, func() {
			log.Info("Closing BadgerDB...")
			_ = repository.Close()
		}, nil
	default:
		return repositories.NewPostStore(seed...), func() {}, nil
	}
}
