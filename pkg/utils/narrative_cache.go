package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	req "traveldeal/internal/models/request_models"
	resp "traveldeal/internal/models/response_models"
	mem "traveldeal/pkg/memcache"
)

// CachedNarrativeClient serves repeated identical requests from a store.
// Only successful generations are cached.
type CachedNarrativeClient struct {
	inner  NarrativeClientInterface
	store  mem.NarrativeStore
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedNarrativeClient(inner NarrativeClientInterface, store mem.NarrativeStore, ttl time.Duration, logger *zap.Logger) *CachedNarrativeClient {
	return &CachedNarrativeClient{inner: inner, store: store, ttl: ttl, logger: logger}
}

func narrativeCacheKey(request req.NarrativeRequest) (string, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return "", err
	}
	return CacheKey("narrative", string(body)), nil
}

func (c *CachedNarrativeClient) GenerateItinerary(ctx context.Context, request req.NarrativeRequest) (*resp.NarrativeResponse, error) {
	key, err := narrativeCacheKey(request)
	if err != nil {
		return nil, fmt.Errorf("narrative cache key: %w", err)
	}

	if raw, ok, err := c.store.Get(ctx, key); err != nil {
		c.logger.Warn("narrative cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var cached resp.NarrativeResponse
		if err := json.Unmarshal(raw, &cached); err == nil {
			c.logger.Debug("narrative cache hit", zap.String("key", key))
			return &cached, nil
		}
	}

	out, err := c.inner.GenerateItinerary(ctx, request)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(out); err == nil {
		if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
			c.logger.Warn("narrative cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}

func (c *CachedNarrativeClient) Close() error {
	return c.inner.Close()
}
