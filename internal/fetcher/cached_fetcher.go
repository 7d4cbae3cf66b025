package fetcher

import (
	"context"
	"time"

	"github.com/fhuszti/rated-posters-ms-go/internal/logger"
	"github.com/fhuszti/rated-posters-ms-go/internal/metrics"
	"github.com/fhuszti/rated-posters-ms-go/internal/port"
)

// CachedFetcher consults the source cache before downloading and keeps
// successful downloads for ttl. Cache errors only cost a download.
type CachedFetcher struct {
	inner port.PosterFetcher
	cache port.SourceCache
	ttl   time.Duration
}

// compile-time check: *CachedFetcher must satisfy port.PosterFetcher
var _ port.PosterFetcher = (*CachedFetcher)(nil)

func NewCachedFetcher(inner port.PosterFetcher, cache port.SourceCache, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{inner: inner, cache: cache, ttl: ttl}
}

func (f *CachedFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	data, err := f.cache.GetSource(ctx, url)
	if err != nil {
		logger.Warnf(ctx, "⚠️  source cache lookup failed for %s: %v", url, err)
	} else if len(data) > 0 {
		metrics.SourceDownloads.WithLabelValues(metrics.SourceCached).Inc()
		return data, nil
	}

	data, err = f.inner.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	f.cache.SetSource(ctx, url, data, f.ttl)
	return data, nil
}
