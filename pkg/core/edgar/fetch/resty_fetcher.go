package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dgunning/edgartools-go/pkg/core/edgar/obslog"
)

var log = obslog.For("fetch")

// RestyFetcher is the reference Fetcher implementation: a resty
// client carrying the SEC-required identity header on every request,
// gated by a RateLimiter so a batch job never exceeds sec.gov's
// published request budget.
type RestyFetcher struct {
	client  *resty.Client
	limiter *RateLimiter
}

// NewRestyFetcher builds a fetcher that identifies itself as identity
// (e.g. "Acme Research research@acme.example") on every request and
// never issues more than requestsPerSec requests per second.
func NewRestyFetcher(identity string, requestsPerSec float64, timeout time.Duration) *RestyFetcher {
	client := resty.New().
		SetHeader("User-Agent", identity).
		SetHeader("Accept-Encoding", "gzip, deflate").
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second)

	return &RestyFetcher{
		client:  client,
		limiter: NewRateLimiter(requestsPerSec),
	}
}

// Fetch implements Fetcher. When etag is non-empty it is sent as
// If-None-Match; a 304 response yields a nil body, the unchanged
// etag, and a nil error.
func (f *RestyFetcher) Fetch(ctx context.Context, url string, etag string) ([]byte, string, CacheHints, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, etag, CacheHints{}, fmt.Errorf("rate limiter wait for %s: %w", url, err)
	}

	req := f.client.R().SetContext(ctx)
	if etag != "" {
		req.SetHeader("If-None-Match", etag)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, etag, CacheHints{}, fmt.Errorf("fetching %s: %w", url, err)
	}

	if resp.StatusCode() == http.StatusNotModified {
		log.Debug().Str("url", url).Msg("not modified")
		return nil, etag, CacheHints{ETag: etag}, nil
	}
	if resp.StatusCode() >= 300 {
		return nil, etag, CacheHints{}, fmt.Errorf("fetching %s: status %d", url, resp.StatusCode())
	}

	hints := CacheHints{
		ETag:         resp.Header().Get("ETag"),
		LastModified: resp.Header().Get("Last-Modified"),
	}
	return resp.Body(), hints.ETag, hints, nil
}
