package port

import (
	"context"
	"time"
)

// SourceCache keeps recently downloaded source posters to avoid redundant downloads.
type SourceCache interface {
	GetSource(ctx context.Context, url string) ([]byte, error)
	SetSource(ctx context.Context, url string, data []byte, ttl time.Duration)
}
