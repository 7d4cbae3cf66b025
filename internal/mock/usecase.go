package mock

import (
	"context"

	"github.com/fhuszti/rated-posters-ms-go/internal/model"
	"github.com/fhuszti/rated-posters-ms-go/internal/port"
)

// RatedPosterCacher implements port.RatedPosterCacher for handler tests.
type RatedPosterCacher struct {
	Out    port.CacheRatedPosterOutput
	Err    error
	In     port.CacheRatedPosterInput
	Called bool
}

func (m *RatedPosterCacher) CacheRatedPoster(ctx context.Context, in port.CacheRatedPosterInput) (port.CacheRatedPosterOutput, error) {
	m.Called = true
	m.In = in
	return m.Out, m.Err
}

// RatedPosterGetter implements port.RatedPosterGetter for handler tests.
type RatedPosterGetter struct {
	URL    string
	Err    error
	ID     model.ContentID
	Called bool
}

func (m *RatedPosterGetter) GetRatedPoster(ctx context.Context, id model.ContentID) (string, error) {
	m.Called = true
	m.ID = id
	return m.URL, m.Err
}

// RatedPosterDeleter implements port.RatedPosterDeleter for handler tests.
type RatedPosterDeleter struct {
	Err    error
	ID     model.ContentID
	Called bool
}

func (m *RatedPosterDeleter) DeleteRatedPoster(ctx context.Context, id model.ContentID) error {
	m.Called = true
	m.ID = id
	return m.Err
}
