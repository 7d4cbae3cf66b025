package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fhuszti/rated-posters-ms-go/internal/logger"
	"github.com/fhuszti/rated-posters-ms-go/internal/metrics"
	"github.com/fhuszti/rated-posters-ms-go/internal/model"
	"github.com/fhuszti/rated-posters-ms-go/internal/port"
	"github.com/fhuszti/rated-posters-ms-go/internal/usecase/poster"
)

const (
	DefaultFSTTL   = 7 * 24 * time.Hour
	DefaultFSRoute = "/files"
)

// FSStorage keeps rated posters on local disk. Entries expire after ttl;
// expired files are ignored on lookup and removed by Sweep.
type FSStorage struct {
	root    string
	folder  string
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

// compile-time check: *FSStorage must satisfy port.ExpiringStore
var _ port.ExpiringStore = (*FSStorage)(nil)

// NewFSStorage stores posters under root/folder. baseURL is the public prefix
// the API serves root under, DefaultFSRoute when empty.
func NewFSStorage(root, folder, baseURL string, ttl time.Duration) (*FSStorage, error) {
	if root == "" {
		return nil, errors.New("fs storage: root directory is required")
	}
	if folder == "" {
		folder = DefaultFolder
	}
	if baseURL == "" {
		baseURL = DefaultFSRoute
	}
	if ttl <= 0 {
		ttl = DefaultFSTTL
	}
	if err := os.MkdirAll(filepath.Join(root, folder), 0o755); err != nil {
		return nil, fmt.Errorf("fs storage: create cache dir: %w", err)
	}
	return &FSStorage{root: root, folder: folder, baseURL: baseURL, ttl: ttl, now: time.Now}, nil
}

// Root is the cache directory posters are written under.
func (s *FSStorage) Root() string {
	return s.root
}

func (s *FSStorage) path(id model.ContentID) (string, string) {
	key := ObjectKey(s.folder, id)
	return key, filepath.Join(s.root, filepath.FromSlash(key))
}

func (s *FSStorage) expired(info fs.FileInfo) bool {
	return s.now().Sub(info.ModTime()) > s.ttl
}

func (s *FSStorage) PosterURL(ctx context.Context, id model.ContentID) (string, error) {
	key, p := s.path(id)
	logger.Debugf(ctx, "checking for poster %q on disk...", key)

	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", poster.ErrObjectNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", poster.ErrStorage, err)
	}
	if s.expired(info) {
		logger.Infof(ctx, "poster %q expired, dropping it...", key)
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warnf(ctx, "⚠️  failed to remove expired poster %q: %v", key, err)
		}
		return "", poster.ErrObjectNotFound
	}
	return joinURL(s.baseURL, key), nil
}

// Upload writes to a temporary file in the same directory and renames it
// into place, so readers never see a partial poster.
func (s *FSStorage) Upload(ctx context.Context, id model.ContentID, data []byte) (string, error) {
	key, p := s.path(id)
	logger.Infof(ctx, "saving poster %q on disk...", key)

	dir := filepath.Dir(p)
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %v", poster.ErrStorage, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err := os.Remove(tmpName); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warnf(ctx, "failed to remove temp file %q: %v", tmpName, err)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("%w: write temp file: %v", poster.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: close temp file: %v", poster.ErrStorage, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return "", fmt.Errorf("%w: chmod temp file: %v", poster.ErrStorage, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		return "", fmt.Errorf("%w: rename into place: %v", poster.ErrStorage, err)
	}
	return joinURL(s.baseURL, key), nil
}

func (s *FSStorage) Delete(ctx context.Context, id model.ContentID) error {
	key, p := s.path(id)
	logger.Infof(ctx, "removing poster %q from disk...", key)

	err := os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return poster.ErrObjectNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %v", poster.ErrStorage, err)
	}
	return nil
}

// Sweep removes every expired poster and returns how many were deleted.
func (s *FSStorage) Sweep(ctx context.Context) (int, error) {
	dir := filepath.Join(s.root, s.folder)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("%w: read cache dir: %v", poster.ErrStorage, err)
	}

	removed := 0
	for _, e := range entries {
		if ctx.Err() != nil {
			return removed, ctx.Err()
		}
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".jpg") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if !s.expired(info) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warnf(ctx, "⚠️  failed to sweep %q: %v", e.Name(), err)
			continue
		}
		removed++
	}

	metrics.SweptPosters.Add(float64(removed))
	logger.Infof(ctx, "✅  swept %d expired posters from %s", removed, dir)
	return removed, nil
}
