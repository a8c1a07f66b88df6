package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"Nest/internal/api/middleware"
	"Nest/internal/api/routes"
	"Nest/internal/config"
	"Nest/internal/core/env"
	"Nest/internal/core/state"
	fileStore "Nest/internal/db/file"
	"Nest/internal/db/migrations"
	postgresRepo "Nest/internal/db/postgres"
)

// pruner is implemented by snapshot stores that keep history
type pruner interface {
	Prune(ctx context.Context, keep int) (int64, error)
}

func main() {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	store, closeStore := openSnapshotStore(cfg)
	defer closeStore()

	// Resume: rebuild the post state and bind the real environment
	ctx := context.Background()
	st, err := state.Resume(ctx, store, env.NewSystem(), state.ResumeOptions{Strict: cfg.StrictRestore})
	if err != nil {
		log.Fatal("Failed to restore state:", err)
	}

	writer := middleware.NewSingleWriter()
	router, limiter := routes.NewRouter(routes.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimit:      cfg.RateLimitPerMinute,
		RateWindow:     time.Minute,
		RequestLogging: true,
	}, st, writer)
	if limiter != nil {
		defer limiter.Stop()
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("Nest starting", slog.String("port", cfg.Port), slog.String("snapshot_backend", cfg.SnapshotBackend))
		serveErr <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		slog.Info("shutdown requested", slog.String("signal", sig.String()))
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", slog.String("error", err.Error()))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("graceful shutdown incomplete", slog.String("error", err.Error()))
	}

	if err := persist(shutdownCtx, st, store, writer, cfg.ShutdownTimeout, cfg.SnapshotRetain); err != nil {
		slog.Error("failed to persist snapshot", slog.String("error", err.Error()))
		closeStore()
		os.Exit(1)
	}
}

// persist suspends st into store once no request can touch it, then prunes old snapshots.
// The save runs under its own deadline since parent is usually the spent shutdown context.
func persist(parent context.Context, st *state.State, store state.SnapshotStore, writer *middleware.SingleWriter, timeout time.Duration, retain int) error {
	base := context.WithoutCancel(parent)

	var err error
	writer.Exclusive(func() {
		ctx, cancel := context.WithTimeout(base, timeout)
		defer cancel()
		_, err = state.Suspend(ctx, st, store)
	})
	if err != nil {
		return err
	}

	p, ok := store.(pruner)
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(base, timeout)
	defer cancel()
	if removed, err := p.Prune(ctx, retain); err != nil {
		slog.Warn("failed to prune snapshots", slog.String("error", err.Error()))
	} else if removed > 0 {
		slog.Info("pruned old snapshots", slog.Int64("removed", removed))
	}
	return nil
}

// openSnapshotStore connects the configured backend and returns a close func
func openSnapshotStore(cfg config.Config) (state.SnapshotStore, func()) {
	if cfg.SnapshotBackend != config.BackendPostgres {
		log.Printf("Using snapshot file %s", cfg.SnapshotPath)
		return fileStore.NewSnapshotStore(cfg.SnapshotPath), func() {}
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	log.Println("Connected to snapshot database")

	if err := migrations.Up(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	log.Println("Migrations completed successfully")

	return postgresRepo.NewSnapshotRepository(db), func() { _ = db.Close() }
}
