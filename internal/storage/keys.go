package storage

import (
	"strings"

	"github.com/fhuszti/rated-posters-ms-go/internal/model"
)

const (
	DefaultFolder = "rated-posters"
	ContentType   = "image/jpeg"
	CacheControl  = "public, max-age=86400"
)

// ObjectKey is the single location of a content id's rated poster.
func ObjectKey(folder string, id model.ContentID) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = DefaultFolder
	}
	return folder + "/" + id.String() + ".jpg"
}

func joinURL(base, key string) string {
	return strings.TrimSuffix(base, "/") + "/" + key
}
