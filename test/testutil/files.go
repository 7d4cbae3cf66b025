package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/chai2010/webp"
)

func gradient(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 255 / width), G: uint8(y * 255 / height), B: 120, A: 255})
		}
	}
	return img
}

// GeneratePNG encodes a gradient poster of the given size.
func GeneratePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, gradient(width, height)); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	return buf.Bytes()
}

// GenerateWebP encodes a gradient poster of the given size.
func GenerateWebP(t *testing.T, width, height int) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, gradient(width, height), &webp.Options{Quality: 80}); err != nil {
		t.Fatalf("webp encode failed: %v", err)
	}
	return buf.Bytes()
}

// PosterServer serves body at every path and counts the hits.
type PosterServer struct {
	*httptest.Server
	Hits atomic.Int32
}

func NewPosterServer(t *testing.T, contentType string, body []byte) *PosterServer {
	t.Helper()
	ps := &PosterServer{}
	ps.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ps.Hits.Add(1)
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(body)
	}))
	t.Cleanup(ps.Close)
	return ps
}
