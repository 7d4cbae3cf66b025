package mock

import (
	"context"
	"sync"
)

// Fetcher returns canned bytes instead of downloading.
type Fetcher struct {
	mu sync.Mutex

	// stored values
	Out []byte

	// captured inputs
	URL string

	// errors
	Err error

	// call counters
	Calls int
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.URL = url
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Out, nil
}
