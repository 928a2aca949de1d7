// main is the entry point of the Students API.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open (and set up) the SQLite database
//  4. Build the service and the router
//  5. Start the HTTP server in a separate goroutine
//  6. Block until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/students-api --config=config/local.yaml
//
// or
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/students-api
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/springlab/students-api/internal/config"
	"github.com/springlab/students-api/internal/http/api"
	"github.com/springlab/students-api/internal/lib/sl"
	"github.com/springlab/students-api/internal/service/student"
	"github.com/springlab/students-api/internal/storage/sqlite"
)

const version = "1.0.0"

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting students-api",
		slog.String("env", cfg.Env),
		slog.String("version", version),
	)

	// Only main knows the concrete engine; everything below sees
	// storage.Storage.
	storage, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage", sl.Err(err))
		os.Exit(1)
	}
	defer storage.Close()

	log.Info("storage initialised", slog.String("path", cfg.StoragePath))

	svc := student.New(storage, log)
	router := api.NewRouter(cfg.BasePath, log, svc)

	server := &http.Server{
		Addr:         cfg.HTTPServer.Addr,
		Handler:      router,
		ErrorLog:     slog.NewLogLogger(log.Handler(), slog.LevelError),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("server started",
			slog.String("address", cfg.HTTPServer.Addr),
			slog.String("base_path", cfg.BasePath),
		)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error", sl.Err(err))
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully", sl.Err(err))
		return
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a text logger at DEBUG for development and a JSON
// logger for staging (DEBUG) and production (INFO).
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}
}
