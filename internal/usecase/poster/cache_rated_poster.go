package poster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fhuszti/rated-posters-ms-go/internal/metrics"
	"github.com/fhuszti/rated-posters-ms-go/internal/port"
)

type ratedPosterCacherSrv struct {
	store   port.PosterStore
	fetcher port.PosterFetcher
	comp    port.Compositor
	log     *slog.Logger
}

// compile-time check: *ratedPosterCacherSrv must satisfy port.RatedPosterCacher
var _ port.RatedPosterCacher = (*ratedPosterCacherSrv)(nil)

// NewRatedPosterCacher constructs the get-or-create use case.
func NewRatedPosterCacher(store port.PosterStore, fetcher port.PosterFetcher, comp port.Compositor, log *slog.Logger) port.RatedPosterCacher {
	if log == nil {
		log = slog.Default()
	}
	return &ratedPosterCacherSrv{store: store, fetcher: fetcher, comp: comp, log: log}
}

// CacheRatedPoster returns the stored poster for the content id or, on a miss,
// downloads the source, draws the rating badge and uploads the result.
// Nothing is retried and concurrent misses for the same id may both upload.
func (s *ratedPosterCacherSrv) CacheRatedPoster(ctx context.Context, in port.CacheRatedPosterInput) (port.CacheRatedPosterOutput, error) {
	if err := validateCacheInput(in); err != nil {
		return port.CacheRatedPosterOutput{}, err
	}
	log := s.log.With("content_id", in.ContentID.String())

	url, err := s.store.PosterURL(ctx, in.ContentID)
	switch {
	case err == nil:
		log.InfoContext(ctx, "✅  rated poster served from cache")
		metrics.CacheRequests.WithLabelValues(metrics.OutcomeHit).Inc()
		return port.CacheRatedPosterOutput{URL: url, Cached: true}, nil
	case !errors.Is(err, ErrObjectNotFound):
		log.ErrorContext(ctx, "❌  rated poster lookup failed", "stage", "lookup", "error", err)
		metrics.CacheRequests.WithLabelValues(metrics.OutcomeLookupFailed).Inc()
		return port.CacheRatedPosterOutput{}, wrapAs(ErrStorage, err)
	}
	log.DebugContext(ctx, "rated poster cache miss", "poster_url", in.PosterURL)

	src, err := s.fetcher.Fetch(ctx, in.PosterURL)
	if err != nil {
		log.ErrorContext(ctx, "❌  poster download failed", "stage", "fetch", "poster_url", in.PosterURL, "error", err)
		metrics.CacheRequests.WithLabelValues(metrics.OutcomeFetchFailed).Inc()
		return port.CacheRatedPosterOutput{}, wrapAs(ErrDownload, err)
	}

	start := time.Now()
	img, err := s.comp.Compose(src, in.Rating)
	metrics.ComposeDuration.Observe(time.Since(start).Seconds())
	if err == nil && len(img) == 0 {
		err = fmt.Errorf("%w: empty output", ErrComposition)
	}
	if err != nil {
		log.ErrorContext(ctx, "❌  poster composition failed", "stage", "compose", "rating", in.Rating.Format(), "error", err)
		metrics.CacheRequests.WithLabelValues(metrics.OutcomeCompositionFailed).Inc()
		return port.CacheRatedPosterOutput{}, wrapAs(ErrComposition, err)
	}

	url, err = s.store.Upload(ctx, in.ContentID, img)
	if err != nil {
		log.ErrorContext(ctx, "❌  rated poster upload failed", "stage", "upload", "error", err)
		metrics.CacheRequests.WithLabelValues(metrics.OutcomeUploadFailed).Inc()
		return port.CacheRatedPosterOutput{}, wrapAs(ErrStorage, err)
	}

	log.InfoContext(ctx, "✅  rated poster created", "url", url, "size_bytes", len(img), "rating", in.Rating.Format())
	metrics.CacheRequests.WithLabelValues(metrics.OutcomeCreated).Inc()
	return port.CacheRatedPosterOutput{URL: url, Cached: false}, nil
}
