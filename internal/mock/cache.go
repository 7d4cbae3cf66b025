package mock

import (
	"context"
	"sync"
	"time"
)

// SourceCache is a map-backed source image cache.
type SourceCache struct {
	mu sync.Mutex

	// stored values
	Entries map[string][]byte

	// captured inputs
	TTL time.Duration

	// errors
	GetErr error

	// call counters
	GetCalls int
	SetCalls int
}

func (c *SourceCache) GetSource(ctx context.Context, url string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.GetCalls++
	if c.GetErr != nil {
		return nil, c.GetErr
	}
	return c.Entries[url], nil
}

func (c *SourceCache) SetSource(ctx context.Context, url string, data []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SetCalls++
	c.TTL = ttl
	if c.Entries == nil {
		c.Entries = map[string][]byte{}
	}
	c.Entries[url] = data
}
