package poster

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fhuszti/rated-posters-ms-go/internal/model"
	"github.com/fhuszti/rated-posters-ms-go/internal/port"
)

type ratedPosterGetterSrv struct {
	store port.PosterStore
	log   *slog.Logger
}

// compile-time check: *ratedPosterGetterSrv must satisfy port.RatedPosterGetter
var _ port.RatedPosterGetter = (*ratedPosterGetterSrv)(nil)

func NewRatedPosterGetter(store port.PosterStore, log *slog.Logger) port.RatedPosterGetter {
	if log == nil {
		log = slog.Default()
	}
	return &ratedPosterGetterSrv{store: store, log: log}
}

// GetRatedPoster queries the store live; it never answers from local state.
func (s *ratedPosterGetterSrv) GetRatedPoster(ctx context.Context, id model.ContentID) (string, error) {
	if err := validateContentID(id); err != nil {
		return "", err
	}

	url, err := s.store.PosterURL(ctx, id)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			s.log.WarnContext(ctx, "rated poster not found", "content_id", id.String())
			return "", err
		}
		s.log.ErrorContext(ctx, "❌  rated poster lookup failed", "content_id", id.String(), "stage", "lookup", "error", err)
		return "", wrapAs(ErrStorage, err)
	}
	return url, nil
}
