package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/dirfeed/app/api"
	"github.com/lysyi3m/dirfeed/app/cfg"
	"github.com/lysyi3m/dirfeed/app/database"
	"github.com/lysyi3m/dirfeed/app/library"
	"github.com/lysyi3m/dirfeed/app/preset"
	"github.com/lysyi3m/dirfeed/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	setupLogger(appCfg.Debug)

	if err := run(appCfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

func run(appCfg *cfg.Cfg) error {
	slog.Info("Starting dirfeed", "version", appCfg.Version, "data_dir", appCfg.DataDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(appCfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		return err
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	presets := preset.NewStore(appCfg.PresetFile)
	if _, err := presets.Load(); err != nil {
		return fmt.Errorf("failed to load preset: %w", err)
	}

	fileRepo := database.NewFileRepository(db)
	scanner := library.NewScanner(appCfg.DataDir, fileRepo)

	if appCfg.SyncInterval > 0 {
		scheduler := tasks.NewScheduler(scanner, time.Duration(appCfg.SyncInterval)*time.Second)
		scheduler.Start()
		defer scheduler.Stop()
		slog.Info("Background scanning enabled", "interval", time.Duration(appCfg.SyncInterval)*time.Second)
	}

	handler := api.NewHandler(scanner, presets, fileRepo, api.Options{
		BaseUrl:    appCfg.BaseUrl,
		MaxEntries: appCfg.MaxEntries,
		Version:    appCfg.Version,
		CacheTTL:   time.Duration(appCfg.CacheTTL) * time.Second,
		RenderRate: appCfg.RenderRate,
	})
	server := api.NewServer(handler, appCfg.Debug)

	if appCfg.WatchPreset {
		if err := presets.Watch(ctx, 200*time.Millisecond, handler.Invalidate); err != nil {
			slog.Warn("Preset hot reload disabled", "error", err)
		}
	}

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		slog.Info("Endpoints",
			"listing", fmt.Sprintf("http://localhost:%s/?dateType=published", appCfg.Port),
			"feed", fmt.Sprintf("http://localhost:%s/?format=atom&dateType=published", appCfg.Port),
			"render", fmt.Sprintf("http://localhost:%s/api/render", appCfg.Port),
			"health", fmt.Sprintf("http://localhost:%s/health", appCfg.Port))

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case serveErr = <-serverErrChan:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	return serveErr
}
