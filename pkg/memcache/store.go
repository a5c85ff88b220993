// pkg/memcache/store.go
package mem

import (
	"context"
	"time"
)

// NarrativeStore caches generated narrative payloads by request key.
type NarrativeStore interface {
	// Get returns the cached value for key, or ok=false when missing or expired.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// NopStore never caches anything.
type NopStore struct{}

func (NopStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NopStore) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}
