package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fhuszti/rated-posters-ms-go/internal/config"
	"github.com/fhuszti/rated-posters-ms-go/internal/logger"
	"github.com/fhuszti/rated-posters-ms-go/internal/storage"
)

// Removes expired posters from the local fs cache once and exits.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	logger.Init()
	defer func() { _ = logger.Close() }()

	if cfg.StorageDriver != storage.DriverFS {
		logger.Warnf(ctx, "⚠️  Storage driver is %q; only the fs driver needs sweeping", cfg.StorageDriver)
		return
	}

	s, err := storage.NewFSStorage(cfg.FSCacheDir, cfg.StorageFolder, cfg.StoragePublicURL, cfg.FSCacheTTL)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to open local poster cache: %v", err)
		os.Exit(1)
	}

	n, err := s.Sweep(ctx)
	if err != nil {
		logger.Errorf(ctx, "❌  Sweep failed after removing %d posters: %v", n, err)
		os.Exit(1)
	}
	logger.Infof(ctx, "✅  Sweep finished, %d expired posters removed", n)
}
