package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/jpeg"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fhuszti/rated-posters-ms-go/internal/client"
	"github.com/fhuszti/rated-posters-ms-go/internal/compositor"
	"github.com/fhuszti/rated-posters-ms-go/internal/fetcher"
	"github.com/fhuszti/rated-posters-ms-go/internal/handler"
	"github.com/fhuszti/rated-posters-ms-go/internal/model"
	"github.com/fhuszti/rated-posters-ms-go/internal/storage"
	"github.com/fhuszti/rated-posters-ms-go/internal/usecase/poster"
	"github.com/fhuszti/rated-posters-ms-go/test/testutil"
)

func startAPI(t *testing.T, layout compositor.Layout) *httptest.Server {
	t.Helper()
	bucket := testutil.BucketName(t.Name())
	store, err := strg.WithBucket(context.Background(), bucket, storage.URLOptions{URLExpiry: time.Hour})
	if err != nil {
		t.Fatalf("WithBucket: %v", err)
	}
	t.Cleanup(func() { _ = testutil.EmptyBucket(minioClient, bucket) })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := fetcher.NewHTTPFetcher(2*time.Second, 0)
	comp := compositor.New(layout)

	srv := httptest.NewServer(handler.NewRouter(handler.Services{
		Cacher:  poster.NewRatedPosterCacher(store, f, comp, log),
		Getter:  poster.NewRatedPosterGetter(store, log),
		Deleter: poster.NewRatedPosterDeleter(store, log),
	}))
	t.Cleanup(srv.Close)
	return srv
}

func noRedirect() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postCache(t *testing.T, api, posterURL, contentID string, rating any) map[string]any {
	t.Helper()
	body, _ := json.Marshal(map[string]any{"posterUrl": posterURL, "rating": rating, "contentId": contentID})
	resp, err := http.Post(api+"/cache-rated-poster", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST status = %d body = %v", resp.StatusCode, out)
	}
	return out
}

func TestRatedPosterE2E_Lifecycle(t *testing.T) {
	api := startAPI(t, compositor.LayoutSplit)
	origin := testutil.NewPosterServer(t, "image/png", testutil.GeneratePNG(t, 300, 450))
	posterURL := origin.URL + "/w500/poster.png"
	c := noRedirect()

	resp, err := c.Get(api.URL + "/rated-poster/tt0111161")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("initial GET status = %d; want 404", resp.StatusCode)
	}

	created := postCache(t, api.URL, posterURL, "tt0111161", 8.4)
	if created["message"] != "Poster created and cached" {
		t.Errorf("message = %v", created["message"])
	}

	again := postCache(t, api.URL, posterURL, "tt0111161", 8.4)
	if again["message"] != "Poster already cached" {
		t.Errorf("second message = %v", again["message"])
	}
	if hits := origin.Hits.Load(); hits != 1 {
		t.Errorf("origin hits = %d; want 1", hits)
	}

	resp, err = c.Get(api.URL + "/rated-poster/tt0111161")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("GET status = %d; want 302", resp.StatusCode)
	}

	img, err := http.Get(resp.Header.Get("Location"))
	if err != nil {
		t.Fatalf("GET stored poster: %v", err)
	}
	defer img.Body.Close()
	decoded, err := jpeg.Decode(img.Body)
	if err != nil {
		t.Fatalf("stored poster is not a JPEG: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != compositor.CanvasWidth || b.Dy() != compositor.CanvasHeight {
		t.Errorf("stored poster is %dx%d", b.Dx(), b.Dy())
	}

	req, _ := http.NewRequest(http.MethodDelete, api.URL+"/rated-poster/tt0111161", nil)
	resp, err = c.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("DELETE status = %d; want 200", resp.StatusCode)
	}

	resp, err = c.Get(api.URL + "/rated-poster/tt0111161")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET after DELETE status = %d; want 404", resp.StatusCode)
	}
}

func TestRatedPosterE2E_ClientResolvesWebPOverlay(t *testing.T) {
	api := startAPI(t, compositor.LayoutOverlay)
	origin := testutil.NewPosterServer(t, "image/webp", testutil.GenerateWebP(t, 200, 300))
	r := client.NewResolver(api.URL, 10*time.Second)
	ctx := context.Background()

	in := client.Request{
		PosterURL: origin.URL + "/poster.webp",
		Rating:    model.Rating{Value: 5.5, Rated: true},
		ContentID: "kitsu:42",
	}

	first := r.Resolve(ctx, in)
	if first.Source != client.SourceCreated {
		t.Fatalf("first resolve = %+v; want created", first)
	}
	second := r.Resolve(ctx, in)
	if second.Source != client.SourceCached || second.URL == "" {
		t.Fatalf("second resolve = %+v; want cached", second)
	}
	if err := r.Delete(ctx, in.ContentID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestRatedPosterE2E_BrokenOriginFallsBack(t *testing.T) {
	api := startAPI(t, compositor.LayoutSplit)
	origin := testutil.NewPosterServer(t, "text/html", []byte("<html>not an image</html>"))
	r := client.NewResolver(api.URL, 10*time.Second)

	in := client.Request{PosterURL: origin.URL + "/broken.jpg", ContentID: "tt404"}
	res := r.Resolve(context.Background(), in)
	if res.Source != client.SourceFallback || res.URL != in.PosterURL {
		t.Fatalf("resolve = %+v; want fallback to %s", res, in.PosterURL)
	}

	resp, err := noRedirect().Get(fmt.Sprintf("%s/rated-poster/%s", api.URL, in.ContentID))
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET status = %d; want 404 since nothing was stored", resp.StatusCode)
	}
}
