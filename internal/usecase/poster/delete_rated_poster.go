package poster

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fhuszti/rated-posters-ms-go/internal/model"
	"github.com/fhuszti/rated-posters-ms-go/internal/port"
)

type ratedPosterDeleterSrv struct {
	store port.PosterStore
	log   *slog.Logger
}

// compile-time check: *ratedPosterDeleterSrv must satisfy port.RatedPosterDeleter
var _ port.RatedPosterDeleter = (*ratedPosterDeleterSrv)(nil)

func NewRatedPosterDeleter(store port.PosterStore, log *slog.Logger) port.RatedPosterDeleter {
	if log == nil {
		log = slog.Default()
	}
	return &ratedPosterDeleterSrv{store: store, log: log}
}

// DeleteRatedPoster removes the stored poster. A missing poster is reported as
// ErrObjectNotFound, not as a storage failure.
func (s *ratedPosterDeleterSrv) DeleteRatedPoster(ctx context.Context, id model.ContentID) error {
	if err := validateContentID(id); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			s.log.WarnContext(ctx, "rated poster to delete not found", "content_id", id.String())
			return err
		}
		s.log.ErrorContext(ctx, "❌  rated poster deletion failed", "content_id", id.String(), "stage", "delete", "error", err)
		return wrapAs(ErrStorage, err)
	}

	s.log.InfoContext(ctx, "✅  rated poster deleted", "content_id", id.String())
	return nil
}
