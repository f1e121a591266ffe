package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/mdagest/internal/api"
	"github.com/dgallion1/mdagest/internal/config"
	"github.com/dgallion1/mdagest/internal/pipeline"
	"github.com/dgallion1/mdagest/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	var keywords string
	if cfg.KeywordsFile != "" {
		var err error
		keywords, err = config.LoadKeywords(cfg.KeywordsFile)
		if err != nil {
			log.Error("invalid keywords file", "error", err)
			os.Exit(1)
		}
		log.Info("loaded keyword catalog", "path", cfg.KeywordsFile)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink, err := openSink(ctx, cfg)
	if err != nil {
		log.Error("result sink unavailable", "sink", cfg.ResultSink, "error", err)
		os.Exit(1)
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, sink, keywords, log)
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
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		// No new submissions after the HTTP server is down.
		orch.Stop()
		sink.Close()
	}()

	log.Info("starting mdagest", "port", cfg.Port, "workers", cfg.WorkerCount, "sink", cfg.ResultSink)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	<-stopped
}

func openSink(ctx context.Context, cfg config.Config) (store.Sink, error) {
	switch cfg.ResultSink {
	case config.SinkNone:
		return store.NopSink{}, nil
	case config.SinkPathstore:
		return store.NewPathstoreSink(cfg.PathstoreURL, cfg.PathstoreAPIKey), nil
	case config.SinkPostgres:
		return store.NewPostgresSink(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown result sink %q", cfg.ResultSink)
	}
}
