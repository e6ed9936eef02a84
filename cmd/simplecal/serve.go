package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fmizzell/simplecal"
	"github.com/fmizzell/simplecal/api"
	"github.com/fmizzell/simplecal/config"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API for a host UI",
	Run:   serve,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func serve(cmd *cobra.Command, args []string) {
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	store, closeStore := mustOpenStore()
	defer closeStore()

	unsubscribe := store.Subscribe(simplecal.LogListener(logger))
	defer unsubscribe()

	var dec simplecal.Decomposer
	if cfg.Gemini.APIKey != "" {
		dec = decomposer()
	} else {
		logger.Warn("gemini api key not set, decomposition disabled")
	}
	if cfg.Server.APIKey == "" {
		logger.Warn("server api key not set, API is unauthenticated")
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(store, dec, cfg.Server.APIKey, logger),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("simplecal server starting", "addr", addr, "storage", cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-done:
	case err := <-errCh:
		logger.Error("server error", "error", err)
		closeStore()
		os.Exit(1)
	}
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
