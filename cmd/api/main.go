package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fhuszti/rated-posters-ms-go/internal/cache"
	"github.com/fhuszti/rated-posters-ms-go/internal/compositor"
	"github.com/fhuszti/rated-posters-ms-go/internal/config"
	"github.com/fhuszti/rated-posters-ms-go/internal/fetcher"
	"github.com/fhuszti/rated-posters-ms-go/internal/handler"
	"github.com/fhuszti/rated-posters-ms-go/internal/logger"
	"github.com/fhuszti/rated-posters-ms-go/internal/metrics"
	"github.com/fhuszti/rated-posters-ms-go/internal/port"
	"github.com/fhuszti/rated-posters-ms-go/internal/storage"
	"github.com/fhuszti/rated-posters-ms-go/internal/usecase/poster"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	log := logger.Init()
	defer func() { _ = logger.Close() }()
	metrics.Init()

	store := initStorage(ctx, cfg)

	layout, err := compositor.ParseLayout(cfg.PosterLayout)
	if err != nil {
		logger.Errorf(ctx, "❌  %v", err)
		os.Exit(1)
	}
	comp := compositor.New(layout).WithMaxSourcePixels(cfg.MaxSourcePixels)

	srcCache, closeCache := initSourceCache(ctx, cfg)
	defer closeCache()
	posterFetcher := fetcher.NewCachedFetcher(
		fetcher.NewHTTPFetcher(cfg.FetchTimeout, cfg.FetchMaxBytes),
		srcCache,
		cfg.SourceCacheTTL,
	)

	svcs := handler.Services{
		Cacher:  poster.NewRatedPosterCacher(store, posterFetcher, comp, log),
		Getter:  poster.NewRatedPosterGetter(store, log),
		Deleter: poster.NewRatedPosterDeleter(store, log),
		Metrics: metrics.Handler(),
	}

	stopSweep := func() {}
	if fsStore, ok := store.(*storage.FSStorage); ok {
		svcs.Files = fsStore.FileHandler()
		svcs.FilesRoute = storage.DefaultFSRoute
		stopSweep = startSweeper(ctx, fsStore, cfg.FSSweepInterval)
	}

	logger.Infof(ctx, "initialising router (layout %s, store %s)...", layout.Name, cfg.StorageDriver)
	r := handler.NewRouter(svcs)

	listenRouter(ctx, r, cfg, stopSweep)
}

func initStorage(ctx context.Context, cfg *config.Settings) port.PosterStore {
	store, err := storage.New(ctx, storage.ConfigFromSettings(cfg))
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialise %s storage: %v", cfg.StorageDriver, err)
		os.Exit(1)
	}
	logger.Infof(ctx, "✅  %s storage ready", cfg.StorageDriver)
	return store
}

func initSourceCache(ctx context.Context, cfg *config.Settings) (port.SourceCache, func()) {
	if cfg.RedisAddr == "" {
		logger.Warn(ctx, "⚠️  Redis not configured — source poster caching is disabled")
		return cache.NewNoop(), func() {}
	}

	ca := cache.NewCache(cfg.RedisAddr, cfg.RedisPassword)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := ca.Ping(pingCtx); err != nil {
		logger.Warnf(ctx, "⚠️  Redis at %s is not reachable yet: %v", cfg.RedisAddr, err)
	} else {
		logger.Info(ctx, "✅  Redis source cache enabled")
	}
	return ca, func() { _ = ca.Close() }
}

// startSweeper removes expired local posters every interval until stopped.
func startSweeper(ctx context.Context, s port.ExpiringStore, interval time.Duration) func() {
	if interval <= 0 {
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		sweep := func() {
			if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
				logger.Errorf(ctx, "❌  Poster sweep failed: %v", err)
			}
		}

		sweep()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweep()
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

func listenRouter(ctx context.Context, r http.Handler, cfg *config.Settings, stopSweep func()) {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// start serving
	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	// block until we get SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	stopSweep()

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		return
	}
	logger.Info(ctx, "✅  Server gracefully stopped")
}
