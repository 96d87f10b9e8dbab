package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"daftar/internal/amqp"
	"daftar/internal/config"
	apphttp "daftar/internal/http"
	"daftar/internal/services"
	"daftar/internal/storage"
)

func main() {
	// Load .env for local development; production sets real env vars.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// AMQP is optional; without it mutations simply skip the backup trigger.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, backup requests disabled", "error", err)
		} else {
			defer amqpClient.Close()
		}
	}

	ledger := services.NewLedgerService(repo, repo, cfg.LedgerCacheTTL)
	lifecycle := services.NewLifecycleService(repo, repo, repo, repo)
	exportSvc := services.NewExportService(repo, repo, repo, repo)
	templates := services.NewTemplateService(repo)

	onMutate := func() {
		ledger.InvalidateCache()
		if amqpClient != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := amqpClient.PublishBackupRequest(ctx, amqp.ReasonMutation); err != nil {
				slog.Error("Failed to publish backup request", "error", err)
			}
		}
	}
	lifecycle.OnMutate(onMutate)

	server := apphttp.NewServer(apphttp.Deps{
		Ledger:          ledger,
		Lifecycle:       lifecycle,
		Export:          exportSvc,
		Templates:       templates,
		ExpenseCreator:  repo,
		EmployeeCreator: repo,
		TemplateCreator: repo,
		SettingsReader:  repo,
		SettingsWriter:  repo,
		AllowedOrigins:  cfg.AllowedOrigins,
	})
	server.OnMutate(onMutate)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        server.Router(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting daftar server", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
