package mock

import (
	"sync"

	"github.com/fhuszti/rated-posters-ms-go/internal/model"
)

// Compositor tags the source bytes with the formatted rating.
type Compositor struct {
	mu sync.Mutex

	// captured inputs
	Rating model.Rating

	// errors
	Err error

	// call counters
	Calls int
}

func (c *Compositor) Compose(src []byte, rating model.Rating) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Calls++
	c.Rating = rating
	if c.Err != nil {
		return nil, c.Err
	}
	out := append([]byte(nil), src...)
	return append(out, []byte("|"+rating.Format())...), nil
}
