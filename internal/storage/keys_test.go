package storage

import (
	"testing"

	"github.com/fhuszti/rated-posters-ms-go/internal/model"
)

func TestObjectKey(t *testing.T) {
	tests := []struct {
		folder string
		id     model.ContentID
		want   string
	}{
		{"", "tt1", "rated-posters/tt1.jpg"},
		{"rated-posters", "tt0111161", "rated-posters/tt0111161.jpg"},
		{"/covers/", "kitsu:1", "covers/kitsu:1.jpg"},
	}
	for _, tc := range tests {
		if got := ObjectKey(tc.folder, tc.id); got != tc.want {
			t.Errorf("ObjectKey(%q, %q) = %q; want %q", tc.folder, tc.id, got, tc.want)
		}
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	cases := map[string]string{
		"":                                      "",
		"s3.amazonaws.com":                      "s3.amazonaws.com",
		"https://abc.r2.cloudflarestorage.com/": "abc.r2.cloudflarestorage.com",
		"http://localhost:9000/some/path":       "localhost:9000",
	}
	for in, want := range cases {
		if got := normalizeEndpoint(in); got != want {
			t.Errorf("normalizeEndpoint(%q) = %q; want %q", in, got, want)
		}
	}
}

func contentIDFor(s string) model.ContentID {
	return model.ContentID(s)
}
