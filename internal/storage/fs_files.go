package storage

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fhuszti/rated-posters-ms-go/internal/logger"
)

// FileHandler serves stored posters by key, relative to the base URL.
// Only live .jpg files directly under the poster folder are served;
// directories and expired entries answer 404.
func (s *FSStorage) FileHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		dir, name := path.Split(key)
		if strings.HasSuffix(r.URL.Path, "/") || dir != s.folder+"/" || !strings.HasSuffix(name, ".jpg") || name == ".jpg" {
			http.NotFound(w, r)
			return
		}

		f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(key)))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer func() { _ = f.Close() }()

		info, err := f.Stat()
		if err != nil || !info.Mode().IsRegular() {
			http.NotFound(w, r)
			return
		}
		if s.expired(info) {
			logger.Debugf(r.Context(), "poster %q expired, not serving it", key)
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", ContentType)
		w.Header().Set("Cache-Control", CacheControl)
		http.ServeContent(w, r, name, info.ModTime(), f)
	})
}
