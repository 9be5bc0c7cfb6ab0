package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/heartmarshall/eventhub-backend/internal/config"
	"github.com/heartmarshall/eventhub-backend/internal/domain"
)

// Store is the read surface of a document collection.
type Store interface {
	Exists(ctx context.Context, id string) (bool, error)
	GetSummary(ctx context.Context, id string) (*domain.DocumentSummary, error)
}

// NewRedisClient creates a Redis client from cache settings.
func NewRedisClient(cfg config.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// CachedStore keeps document summaries in Redis. Existence checks always go
// to the underlying store so toggles and pruning see current data.
// Redis failures degrade to uncached reads.
type CachedStore struct {
	next   Store
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
	log    *slog.Logger
}

// NewCachedStore wraps next with a Redis summary cache. namespace separates
// keys of different collections.
func NewCachedStore(next Store, rdb *redis.Client, ttl time.Duration, namespace string, logger *slog.Logger) *CachedStore {
	return &CachedStore{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		prefix: "docstore:" + namespace + ":summary:",
		log:    logger.With("component", "docstore_cache", "namespace", namespace),
	}
}

// Exists delegates to the underlying store.
func (c *CachedStore) Exists(ctx context.Context, id string) (bool, error) {
	return c.next.Exists(ctx, id)
}

// GetSummary returns a cached summary or loads and caches it. Missing
// documents evict any stale entry.
func (c *CachedStore) GetSummary(ctx context.Context, id string) (*domain.DocumentSummary, error) {
	key := c.prefix + id

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var s domain.DocumentSummary
		if jsonErr := json.Unmarshal(raw, &s); jsonErr == nil {
			return &s, nil
		}
		c.log.WarnContext(ctx, "discarding undecodable cache entry", slog.String("id", id))
	case !errors.Is(err, redis.Nil):
		c.log.WarnContext(ctx, "cache read failed", slog.String("id", id), slog.String("error", err.Error()))
	}

	s, err := c.next.GetSummary(ctx, id)
	if errors.Is(err, domain.ErrTargetNotFound) {
		c.Invalidate(ctx, id)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(s); jsonErr == nil {
		if setErr := c.rdb.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			c.log.WarnContext(ctx, "cache write failed", slog.String("id", id), slog.String("error", setErr.Error()))
		}
	}
	return s, nil
}

// Invalidate drops the cached summary of id.
func (c *CachedStore) Invalidate(ctx context.Context, id string) {
	if err := c.rdb.Del(ctx, c.prefix+id).Err(); err != nil {
		c.log.WarnContext(ctx, "cache invalidate failed", slog.String("id", id), slog.String("error", err.Error()))
	}
}
