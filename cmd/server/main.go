package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docrank/internal/api"
	"github.com/dgallion1/docrank/internal/config"
	"github.com/dgallion1/docrank/internal/embed"
	"github.com/dgallion1/docrank/internal/persona"
	"github.com/dgallion1/docrank/internal/pipeline"
	"github.com/dgallion1/docrank/internal/ranking"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the embedding backend.
	embedder, err := embed.New(cfg.EmbedProvider, cfg.EmbedURL, cfg.EmbedModel, cfg.EmbedCacheDir)
	if err != nil {
		log.Error("embedder init failed", "provider", cfg.EmbedProvider, "error", err)
		os.Exit(1)
	}

	engine, err := ranking.NewEngine(cfg.Weights, embedder)
	if err != nil {
		log.Error("invalid ranking weights", "error", err)
		os.Exit(1)
	}
	builder := persona.NewBuilder(embedder)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, engine, builder, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if closer, ok := embedder.(interface{ Close() }); ok {
			closer.Close()
		}
	}()

	log.Info("starting docrank", "port", cfg.Port, "embed_provider", cfg.EmbedProvider)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
