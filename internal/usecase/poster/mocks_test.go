package poster

import (
	"context"
	"io"
	"log/slog"

	"github.com/fhuszti/rated-posters-ms-go/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockStore struct {
	objects map[model.ContentID][]byte

	lookupErr error
	uploadErr error
	deleteErr error

	lookupCalls int
	uploadCalls int
	deleteCalls int
	uploaded    []byte
}

func newMockStore() *mockStore {
	return &mockStore{objects: map[model.ContentID][]byte{}}
}

func (m *mockStore) url(id model.ContentID) string {
	return "https://cdn.example.com/rated-posters/" + id.String() + ".jpg"
}

func (m *mockStore) PosterURL(ctx context.Context, id model.ContentID) (string, error) {
	m.lookupCalls++
	if m.lookupErr != nil {
		return "", m.lookupErr
	}
	if _, ok := m.objects[id]; !ok {
		return "", ErrObjectNotFound
	}
	return m.url(id), nil
}

func (m *mockStore) Upload(ctx context.Context, id model.ContentID, data []byte) (string, error) {
	m.uploadCalls++
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	m.uploaded = data
	m.objects[id] = data
	return m.url(id), nil
}

func (m *mockStore) Delete(ctx context.Context, id model.ContentID) error {
	m.deleteCalls++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.objects[id]; !ok {
		return ErrObjectNotFound
	}
	delete(m.objects, id)
	return nil
}

type mockFetcher struct {
	out   []byte
	err   error
	calls int
	url   string
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	m.calls++
	m.url = url
	if m.err != nil {
		return nil, m.err
	}
	return m.out, nil
}

type mockCompositor struct {
	out    []byte
	err    error
	calls  int
	src    []byte
	rating model.Rating
}

func (m *mockCompositor) Compose(src []byte, rating model.Rating) ([]byte, error) {
	m.calls++
	m.src = src
	m.rating = rating
	if m.err != nil {
		return nil, m.err
	}
	return m.out, nil
}
