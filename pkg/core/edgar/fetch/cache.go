package fetch

import "context"

// BlobCache is a content-addressable cache for fetched bytes, keyed
// by whatever the caller considers the document's identity (a URL, or
// a cik/accession pair folded into one string).
type BlobCache interface {
	Get(key string) ([]byte, bool)
	Put(key string, data []byte) error
	Evict(key string) error
}

// CachingFetcher wraps a Fetcher with a BlobCache: a cache hit skips
// the network entirely; a miss fetches through the wrapped Fetcher and
// populates the cache before returning.
type CachingFetcher struct {
	Fetcher Fetcher
	Cache   BlobCache
}

// Fetch implements Fetcher. On a cache hit, etag is echoed back
// unchanged and the network is never touched. On a miss, the
// underlying Fetcher is called and a successful, non-empty result is
// written into the cache under url before returning.
func (f *CachingFetcher) Fetch(ctx context.Context, url string, etag string) ([]byte, string, CacheHints, error) {
	if data, ok := f.Cache.Get(url); ok {
		return data, etag, CacheHints{ETag: etag}, nil
	}

	body, newETag, hints, err := f.Fetcher.Fetch(ctx, url, etag)
	if err != nil {
		return nil, etag, CacheHints{}, err
	}
	if len(body) > 0 {
		if putErr := f.Cache.Put(url, body); putErr != nil {
			log.Warn().Err(putErr).Str("url", url).Msg("caching fetched document failed")
		}
	}
	return body, newETag, hints, nil
}
