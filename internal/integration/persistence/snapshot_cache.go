package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gestor-gastos/backend/internal/application/adapter"
	"github.com/gestor-gastos/backend/internal/domain/entity"
)

// snapshotCacheKeyPrefix namespaces snapshot entries in redis.
const snapshotCacheKeyPrefix = "snapshot:"

// cachedSnapshotRepository decorates a SnapshotRepository with a
// write-through redis cache. The database stays the source of durability:
// saves hit it first, and any cache failure silently degrades to the
// database path.
type cachedSnapshotRepository struct {
	inner  adapter.SnapshotRepository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedSnapshotRepository wraps the repository with a redis cache.
func NewCachedSnapshotRepository(inner adapter.SnapshotRepository, client *redis.Client, ttl time.Duration) adapter.SnapshotRepository {
	return &cachedSnapshotRepository{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}
}

// Load tries the cache first and falls back to the database, repopulating
// the cache on a hit.
func (r *cachedSnapshotRepository) Load(ctx context.Context, key string) (*entity.State, error) {
	payload, err := r.client.Get(ctx, snapshotCacheKeyPrefix+key).Bytes()
	if err == nil {
		var state entity.State
		if err := json.Unmarshal(payload, &state); err == nil {
			state = state.Normalize()
			return &state, nil
		}
		// Corrupt cache entry; fall through to the database.
	} else if !errors.Is(err, redis.Nil) {
		slog.Warn("Snapshot cache read failed", "user", key, "error", err)
	}

	state, err := r.inner.Load(ctx, key)
	if err != nil || state == nil {
		return state, err
	}

	r.populate(ctx, key, *state)
	return state, nil
}

// Save writes through: the database first for durability, then the cache.
func (r *cachedSnapshotRepository) Save(ctx context.Context, key string, state entity.State) error {
	if err := r.inner.Save(ctx, key, state); err != nil {
		return err
	}
	r.populate(ctx, key, state)
	return nil
}

func (r *cachedSnapshotRepository) populate(ctx context.Context, key string, state entity.State) {
	payload, err := json.Marshal(state.Normalize())
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, snapshotCacheKeyPrefix+key, payload, r.ttl).Err(); err != nil {
		slog.Warn("Snapshot cache write failed", "user", key, "error", err)
	}
}
