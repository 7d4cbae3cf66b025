package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/fhuszti/rated-posters-ms-go/internal/logger"
	"github.com/fhuszti/rated-posters-ms-go/internal/model"
)

const DefaultTimeout = 10 * time.Second

// Source tells where a resolved poster URL came from.
type Source string

const (
	SourceCached   Source = "cached"
	SourceCreated  Source = "created"
	SourceFallback Source = "fallback"
)

var (
	ErrNotFound   = errors.New("rated poster not found")
	ErrUnexpected = errors.New("unexpected response from rated posters service")
)

type Request struct {
	PosterURL string
	Rating    model.Rating
	ContentID model.ContentID
}

// Result is never empty: on any failure URL is the original poster URL and
// Err holds the reason.
type Result struct {
	URL    string
	Source Source
	Err    error
}

type cacheRequest struct {
	PosterURL string       `json:"posterUrl"`
	Rating    model.Rating `json:"rating"`
	ContentID string       `json:"contentId"`
}

type cacheResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Resolver talks to the rated posters API and degrades to the plain poster.
type Resolver struct {
	client *resty.Client
}

func NewResolver(baseURL string, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")
	// the Location header of the GET is the answer
	client.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))

	return &Resolver{client: client}
}

// Resolve looks the rated poster up, asks the service to create it when
// missing, and falls back to the original poster URL on any failure.
func (r *Resolver) Resolve(ctx context.Context, in Request) Result {
	u, err := r.Lookup(ctx, in.ContentID)
	if err == nil {
		return Result{URL: u, Source: SourceCached}
	}
	if !errors.Is(err, ErrNotFound) {
		return r.fallback(ctx, in, err)
	}

	u, err = r.Create(ctx, in)
	if err != nil {
		return r.fallback(ctx, in, err)
	}
	return Result{URL: u, Source: SourceCreated}
}

func (r *Resolver) fallback(ctx context.Context, in Request, err error) Result {
	logger.Warnf(ctx, "⚠️  Falling back to the original poster for %s: %v", in.ContentID, err)
	return Result{URL: in.PosterURL, Source: SourceFallback, Err: err}
}

// Lookup returns the stored poster URL, or ErrNotFound.
func (r *Resolver) Lookup(ctx context.Context, id model.ContentID) (string, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		Get("/rated-poster/" + url.PathEscape(id.String()))
	if err != nil {
		return "", fmt.Errorf("lookup %s: %w", id, err)
	}

	switch resp.StatusCode() {
	case http.StatusFound, http.StatusMovedPermanently, http.StatusSeeOther, http.StatusTemporaryRedirect:
		loc := resp.Header().Get("Location")
		if loc == "" {
			return "", fmt.Errorf("%w: redirect without location", ErrUnexpected)
		}
		return loc, nil
	case http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	default:
		return "", fmt.Errorf("%w: lookup status %d", ErrUnexpected, resp.StatusCode())
	}
}

// Create asks the service to render and store the rated poster.
func (r *Resolver) Create(ctx context.Context, in Request) (string, error) {
	var out cacheResponse
	var apiErr errorResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(cacheRequest{PosterURL: in.PosterURL, Rating: in.Rating, ContentID: in.ContentID.String()}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/cache-rated-poster")
	if err != nil {
		return "", fmt.Errorf("create %s: %w", in.ContentID, err)
	}

	if resp.StatusCode() != http.StatusOK {
		if apiErr.Message != "" {
			return "", fmt.Errorf("%w: %s (%s)", ErrUnexpected, apiErr.Error, apiErr.Message)
		}
		return "", fmt.Errorf("%w: create status %d", ErrUnexpected, resp.StatusCode())
	}
	if !out.Success || out.URL == "" {
		return "", fmt.Errorf("%w: create returned no url", ErrUnexpected)
	}
	return out.URL, nil
}

// Delete removes the stored rated poster.
func (r *Resolver) Delete(ctx context.Context, id model.ContentID) error {
	var apiErr errorResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetError(&apiErr).
		Delete("/rated-poster/" + url.PathEscape(id.String()))
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusNoContent:
		return nil
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	default:
		return fmt.Errorf("%w: delete status %d", ErrUnexpected, resp.StatusCode())
	}
}
