// Package main runs carelined, the HTTP support-agent server. It serves the
// remote-agent contract (POST /agent/) from the in-process pipeline, or
// proxies it to an upstream agent when one is configured.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	careline "github.com/careline/careline"
	"github.com/careline/careline/internal/transcript"
	"github.com/careline/careline/internal/version"

	// Register built-in plugins so they can be loaded from config.
	_ "github.com/careline/careline/internal/plugins/logger"
	_ "github.com/careline/careline/internal/plugins/sanitizer"
	_ "github.com/careline/careline/internal/plugins/styler"
)

func main() {
	cfg := careline.DefaultConfig()
	if cfgPath := os.Getenv("CARELINE_CONFIG"); cfgPath != "" {
		loaded, err := careline.LoadConfig(cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if err := careline.ValidateConfig(*loaded); err != nil {
			log.Fatalf("Invalid config: %v", err)
		}
		cfg = *loaded
		log.Printf("Config loaded: kb=%s, plugins=%d", cfg.KB.Dir, len(cfg.Plugins))
	}

	pl, err := buildPipeline(cfg)
	if err != nil {
		log.Fatalf("Failed to build pipeline: %v", err)
	}

	writer, closeWriter, err := newTranscriptWriter(cfg.Transcript)
	if err != nil {
		log.Fatalf("Failed to open transcript store: %v", err)
	}
	defer closeWriter()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newRouter(cfg, pl, writer),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		log.Println("Shutting down gracefully…")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("carelined %s listening on %s", version.Short(), cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stop()
		log.Fatalf("Server error: %v", err) //nolint:gocritic
	}
	log.Println("Server stopped.")
}

// newTranscriptWriter opens the configured transcript backend. The returned
// close function is a no-op for the off/noop case.
func newTranscriptWriter(cfg careline.TranscriptConfig) (transcript.Writer, func(), error) {
	switch cfg.Driver {
	case careline.TranscriptSQLite:
		w, err := transcript.NewSQLiteWriter(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return w, func() { _ = w.Close() }, nil
	case careline.TranscriptPostgres:
		w, err := transcript.NewPostgresWriter(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return w, func() { _ = w.Close() }, nil
	default:
		return transcript.NoopWriter{}, func() {}, nil
	}
}
