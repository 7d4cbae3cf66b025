package port

import "context"

// PosterFetcher downloads a source poster image.
type PosterFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
