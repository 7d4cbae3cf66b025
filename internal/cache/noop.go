package cache

import (
	"context"
	"time"

	"github.com/fhuszti/rated-posters-ms-go/internal/port"
)

// NoopCache is used when no Redis address is configured.
type NoopCache struct{}

// compile-time check: *NoopCache must satisfy port.SourceCache
var _ port.SourceCache = (*NoopCache)(nil)

func NewNoop() *NoopCache {
	return &NoopCache{}
}

func (n *NoopCache) GetSource(ctx context.Context, url string) ([]byte, error) {
	return nil, nil // always cache miss
}

func (n *NoopCache) SetSource(ctx context.Context, url string, data []byte, ttl time.Duration) {
}
