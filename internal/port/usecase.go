package port

import (
	"context"

	"github.com/fhuszti/rated-posters-ms-go/internal/model"
)

// RatedPosterCacher returns the stored rated poster for a content id, creating it when missing.
type RatedPosterCacher interface {
	CacheRatedPoster(ctx context.Context, in CacheRatedPosterInput) (CacheRatedPosterOutput, error)
}
type CacheRatedPosterInput struct {
	PosterURL string
	Rating    model.Rating
	ContentID model.ContentID
}
type CacheRatedPosterOutput struct {
	URL    string `json:"url"`
	Cached bool   `json:"cached"`
}

// RatedPosterGetter resolves the URL of a stored rated poster.
type RatedPosterGetter interface {
	GetRatedPoster(ctx context.Context, id model.ContentID) (string, error)
}

// RatedPosterDeleter removes a stored rated poster.
type RatedPosterDeleter interface {
	DeleteRatedPoster(ctx context.Context, id model.ContentID) error
}
