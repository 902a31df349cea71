package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"petpatrol/internal/domain/catalog"
	"petpatrol/internal/platform/logger"
	"petpatrol/internal/platform/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	CatalogKeyPrefix  = "catalog:%s"
	DefaultCatalogTTL = 10 * time.Minute
)

func CatalogKey(kind catalog.Kind) string {
	return fmt.Sprintf(CatalogKeyPrefix, kind)
}

// CatalogRepo envuelve un catalog.Repository. Redis nunca es fuente de
// error: si falla, se lee del repositorio envuelto.
type CatalogRepo struct {
	next   catalog.Repository
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

// NewCatalogRepo devuelve next sin cambios si client es nil.
func NewCatalogRepo(next catalog.Repository, client *redis.Client, ttl time.Duration, log logger.Logger) catalog.Repository {
	if client == nil {
		return next
	}
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogRepo{next: next, client: client, ttl: ttl, log: log}
}

func (r *CatalogRepo) List(ctx context.Context, kind catalog.Kind) ([]catalog.Entry, error) {
	key := CatalogKey(kind)

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var entries []catalog.Entry
		if jerr := json.Unmarshal(raw, &entries); jerr == nil {
			metrics.CatalogCache.WithLabelValues("hit").Inc()
			return entries, nil
		}
		metrics.CatalogCache.WithLabelValues("error").Inc()
	case errors.Is(err, redis.Nil):
		metrics.CatalogCache.WithLabelValues("miss").Inc()
	default:
		metrics.CatalogCache.WithLabelValues("error").Inc()
		logger.FromContext(ctx, r.log).Warn("catalog cache read failed", map[string]any{"key": key, "error": err})
	}

	entries, err := r.next.List(ctx, kind)
	if err != nil {
		return nil, err
	}

	if payload, jerr := json.Marshal(entries); jerr == nil {
		if serr := r.client.Set(ctx, key, payload, r.ttl).Err(); serr != nil {
			logger.FromContext(ctx, r.log).Warn("catalog cache write failed", map[string]any{"key": key, "error": serr})
		}
	}
	return entries, nil
}

// Invalidate borra la entrada cacheada de kind.
func (r *CatalogRepo) Invalidate(ctx context.Context, kind catalog.Kind) error {
	return r.client.Del(ctx, CatalogKey(kind)).Err()
}
