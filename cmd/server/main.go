package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/config"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/filesystem"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/logging"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/server"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/wordcount"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Init(cfg.LoggerConfig(), os.Stdout)

	cache, err := wordcount.NewResultCache(cfg.CacheSize)
	if err != nil {
		logger.Error("Failed to create result cache", "error", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Error("Failed to create upload directory", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(cfg, wordcount.NewCounter(filesystem.DefaultFS{}, logger), cache, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
		return
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
