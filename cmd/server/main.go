package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/avelar/pitch/api"
	dbfs "github.com/avelar/pitch/db"
	"github.com/avelar/pitch/internal/ai"
	"github.com/avelar/pitch/internal/config"
	"github.com/avelar/pitch/internal/db"
	"github.com/avelar/pitch/internal/repository/sqlite"
	"github.com/avelar/pitch/pkg/ollama"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	// optional .env for local development; env vars win over defaults
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	api.SetLogger(logger)
	ai.SetLogger(logger)
	ollama.SetLogger(logger)

	logger.Info("starting pitch server",
		slog.String("version", version),
		slog.String("build_time", buildTime))

	ctx := context.Background()

	// Open database connection and apply pending migrations
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	client, err := ollama.NewDefaultClient(cfg.Ollama)
	if err != nil {
		log.Fatalf("Failed to create Ollama client: %v", err)
	}

	repo := sqlite.New(database)
	formatter := ai.NewFormatter(repo, repo, repo)
	engine, err := ai.NewEngine(client, cfg.Engine, formatter)
	if err != nil {
		log.Fatalf("Failed to create AI engine: %v", err)
	}

	handler := api.SetupRoutes(cfg, version, buildTime, database, engine)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := client.Close(); err != nil {
		logger.Error("error closing Ollama client", slog.String("error", err.Error()))
	}

	// Close database connection
	if err := database.Close(); err != nil {
		logger.Error("error closing DB", slog.String("error", err.Error()))
	}

	logger.Info("server exited")
}
