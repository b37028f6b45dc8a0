package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/revline/review-flow/internal/analyzer"
	"github.com/revline/review-flow/internal/chat"
	"github.com/revline/review-flow/internal/config"
	"github.com/revline/review-flow/internal/logger"
	"github.com/revline/review-flow/internal/pipeline"
	"github.com/revline/review-flow/internal/report"
	"github.com/revline/review-flow/internal/transcriber"
	"github.com/revline/review-flow/internal/uploader"
	"github.com/revline/review-flow/internal/watcher"
	"github.com/revline/review-flow/pkg/executor"
)

func main() {
	ctx := context.Background()

	// Secrets come from the environment; .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Review Flow")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Configuration loaded successfully")

	geminiKeys := splitKeys(os.Getenv("GEMINI_API_KEYS"))
	if len(geminiKeys) == 0 {
		log.Error(ctx, "GEMINI_API_KEYS is not set")
		os.Exit(1)
	}
	uploadKey := os.Getenv("UPLOAD_API_KEY")
	if uploadKey == "" {
		log.Error(ctx, "UPLOAD_API_KEY is not set")
		os.Exit(1)
	}

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
	exec := executor.New()
	tr := transcriber.New(cfg.Whisper, exec, log)
	an := analyzer.New(geminiKeys, cfg.Gemini.Model, log)
	pipe := pipeline.New(tr, an, log, pipeline.Options{
		QueueSize:    cfg.Pipeline.QueueSize,
		PollInterval: cfg.Pipeline.PollInterval,
		ResultTTL:    cfg.Pipeline.ResultTTL,
	})
	up := uploader.New(cfg.Upload, uploadKey, log)
	reports := report.New(cfg.Paths.Reports, log)

	w, err := watcher.New(cfg.Paths.Recordings, pipe, up, reports, log, cfg.Chat.ResultWait)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	gateway := chat.New(cfg.Chat, cfg.Paths.ChatAudio, pipe, up, reports, log)
	defer gateway.Stop()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start the worker and both front-ends
	errChan := make(chan error, 3)
	go func() {
		if err := pipe.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- err
		}
	}()
	go func() {
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- err
		}
	}()
	go func() {
		if err := gateway.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Review Flow is ready!")
	log.Info(ctx, "Recordings: %s", cfg.Paths.Recordings)
	log.Info(ctx, "Chat gateway: %s", cfg.Chat.ListenAddr)
	log.Info(ctx, "Reports: %s", cfg.Paths.Reports)
	log.Info(ctx, "")
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Runtime error: %v", err)
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	log.Info(ctx, "Review Flow stopped")
}

// splitKeys parses a comma-separated key list, dropping empty entries
func splitKeys(raw string) []string {
	var keys []string
	for _, key := range strings.Split(raw, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Recordings,
		cfg.Paths.ChatAudio,
		cfg.Paths.Reports,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
