package fetcher

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/fhuszti/rated-posters-ms-go/internal/logger"
	"github.com/fhuszti/rated-posters-ms-go/internal/metrics"
	"github.com/fhuszti/rated-posters-ms-go/internal/port"
	"github.com/fhuszti/rated-posters-ms-go/internal/usecase/poster"
)

const (
	DefaultTimeout  = 5 * time.Second
	DefaultMaxBytes = 10 << 20
)

// HTTPFetcher downloads source posters over HTTP(S).
type HTTPFetcher struct {
	client   *resty.Client
	maxBytes int64
}

// compile-time check: *HTTPFetcher must satisfy port.PosterFetcher
var _ port.PosterFetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher bounds every download by timeout (connect to last byte) and
// rejects bodies larger than maxBytes. Zero values select the defaults.
func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", "rated-posters-ms/1.0")
	client.SetHeader("Accept", "image/*")

	return &HTTPFetcher{client: client, maxBytes: maxBytes}
}

// Timeout reports the effective download bound.
func (f *HTTPFetcher) Timeout() time.Duration {
	return f.client.GetClient().Timeout
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	data, err := f.fetch(ctx, url)
	if err != nil {
		metrics.SourceDownloads.WithLabelValues(metrics.SourceFailed).Inc()
		logger.Warnf(ctx, "❌  failed to download poster %s: %v", url, err)
		return nil, fmt.Errorf("%w: %v", poster.ErrDownload, err)
	}
	metrics.SourceDownloads.WithLabelValues(metrics.SourceDownloaded).Inc()
	logger.Debugf(ctx, "downloaded poster %s (%d bytes)", url, len(data))
	return data, nil
}

func (f *HTTPFetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return nil, err
	}
	body := resp.RawBody()
	defer func() { _ = body.Close() }()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode())
	}

	data, err := io.ReadAll(io.LimitReader(body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("body exceeds %d bytes", f.maxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty body")
	}
	return data, nil
}
