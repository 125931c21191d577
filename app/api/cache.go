package api

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// rendered is a finished feed or listing body.
type rendered struct {
	ContentType string
	Body        []byte
	Entries     int
}

// responseCache keeps rendered documents for a short time so that feed
// readers polling together trigger a single directory scan. A nil
// responseCache stores nothing.
type responseCache struct {
	store *cache.Cache
}

func newResponseCache(ttl time.Duration) *responseCache {
	if ttl <= 0 {
		return nil
	}
	return &responseCache{store: cache.New(ttl, 2*ttl)}
}

func (r *responseCache) get(key string) (rendered, bool) {
	if r == nil {
		return rendered{}, false
	}
	val, found := r.store.Get(key)
	if !found {
		return rendered{}, false
	}
	out, ok := val.(rendered)
	return out, ok
}

func (r *responseCache) set(key string, out rendered) {
	if r == nil {
		return
	}
	r.store.Set(key, out, cache.DefaultExpiration)
}

func (r *responseCache) flush() {
	if r == nil {
		return
	}
	r.store.Flush()
}
