package fetch

import (
	"context"
	"testing"
)

type stubFetcher struct {
	calls int
	body  []byte
}

func (s *stubFetcher) Fetch(ctx context.Context, url string, etag string) ([]byte, string, CacheHints, error) {
	s.calls++
	return s.body, "etag-1", CacheHints{ETag: "etag-1"}, nil
}

func TestCachingFetcherSkipsNetworkOnHit(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskCache: %v", err)
	}
	inner := &stubFetcher{body: []byte("document body")}
	cf := &CachingFetcher{Fetcher: inner, Cache: cache}

	body1, _, _, err := cf.Fetch(context.Background(), "https://example.com/doc", "")
	if err != nil {
		t.Fatalf("first Fetch: %v", err)
	}
	if string(body1) != "document body" {
		t.Errorf("body1 = %q", body1)
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 network call after miss, got %d", inner.calls)
	}

	body2, _, _, err := cf.Fetch(context.Background(), "https://example.com/doc", "")
	if err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if string(body2) != "document body" {
		t.Errorf("body2 = %q", body2)
	}
	if inner.calls != 1 {
		t.Errorf("expected cache hit to skip the network, calls = %d", inner.calls)
	}
}
