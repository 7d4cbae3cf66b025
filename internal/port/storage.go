package port

import (
	"context"

	"github.com/fhuszti/rated-posters-ms-go/internal/model"
)

// PosterStore persists rated posters in a keyed blob namespace.
// Implementations return poster.ErrObjectNotFound when nothing is stored for an id.
type PosterStore interface {
	PosterURL(ctx context.Context, id model.ContentID) (string, error)
	Upload(ctx context.Context, id model.ContentID, data []byte) (string, error)
	Delete(ctx context.Context, id model.ContentID) error
}

// ExpiringStore is implemented by stores whose entries age out and must be swept.
type ExpiringStore interface {
	PosterStore
	Sweep(ctx context.Context) (int, error)
}
