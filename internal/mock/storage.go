package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/fhuszti/rated-posters-ms-go/internal/model"
	"github.com/fhuszti/rated-posters-ms-go/internal/usecase/poster"
)

// PosterStore is an in-memory poster store for tests.
type PosterStore struct {
	mu sync.Mutex

	// stored values
	Objects map[model.ContentID][]byte
	BaseURL string

	// errors
	PosterURLErr error
	UploadErr    error
	DeleteErr    error

	// call counters
	PosterURLCalls int
	UploadCalls    int
	DeleteCalls    int
}

func NewPosterStore() *PosterStore {
	return &PosterStore{
		Objects: map[model.ContentID][]byte{},
		BaseURL: "https://cdn.example.com/rated-posters",
	}
}

func (s *PosterStore) url(id model.ContentID) string {
	return fmt.Sprintf("%s/%s.jpg", s.BaseURL, id)
}

func (s *PosterStore) PosterURL(ctx context.Context, id model.ContentID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PosterURLCalls++
	if s.PosterURLErr != nil {
		return "", s.PosterURLErr
	}
	if _, ok := s.Objects[id]; !ok {
		return "", fmt.Errorf("%w: %s", poster.ErrObjectNotFound, id)
	}
	return s.url(id), nil
}

func (s *PosterStore) Upload(ctx context.Context, id model.ContentID, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UploadCalls++
	if s.UploadErr != nil {
		return "", s.UploadErr
	}
	if s.Objects == nil {
		s.Objects = map[model.ContentID][]byte{}
	}
	s.Objects[id] = append([]byte(nil), data...)
	return s.url(id), nil
}

func (s *PosterStore) Delete(ctx context.Context, id model.ContentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeleteCalls++
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	if _, ok := s.Objects[id]; !ok {
		return fmt.Errorf("%w: %s", poster.ErrObjectNotFound, id)
	}
	delete(s.Objects, id)
	return nil
}
