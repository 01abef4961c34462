package persistence

import (
	"context"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/gestor-gastos/backend/internal/domain/entity"
)

// countingRepository wraps a map-backed repository and counts loads so tests
// can observe cache hits.
type countingRepository struct {
	mu     sync.Mutex
	stored map[string]entity.State
	loads  int
}

func newCountingRepository() *countingRepository {
	return &countingRepository{stored: make(map[string]entity.State)}
}

func (f *countingRepository) Load(_ context.Context, key string) (*entity.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if state, ok := f.stored[key]; ok {
		s := state.Clone()
		return &s, nil
	}
	return nil, nil
}

func (f *countingRepository) Save(_ context.Context, key string, state entity.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored[key] = state.Clone()
	return nil
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mini.Close)
	return redis.NewClient(&redis.Options{Addr: mini.Addr()})
}

func TestCachedSnapshotRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("save writes through and load hits the cache", func(t *testing.T) {
		inner := newCountingRepository()
		cached := NewCachedSnapshotRepository(inner, newTestRedis(t), time.Hour)

		if err := cached.Save(ctx, "u", sampleState()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		if _, ok := inner.stored["u"]; !ok {
			t.Fatal("expected the database to hold the state after save")
		}

		loaded, err := cached.Load(ctx, "u")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if !reflect.DeepEqual(*loaded, sampleState().Normalize()) {
			t.Errorf("cache returned a different state: %+v", *loaded)
		}
		if inner.loads != 0 {
			t.Errorf("expected cache hit, database was read %d times", inner.loads)
		}
	})

	t.Run("cache miss falls back to the database and repopulates", func(t *testing.T) {
		inner := newCountingRepository()
		inner.stored["u"] = sampleState()
		cached := NewCachedSnapshotRepository(inner, newTestRedis(t), time.Hour)

		if _, err := cached.Load(ctx, "u"); err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if inner.loads != 1 {
			t.Fatalf("expected one database read, got %d", inner.loads)
		}

		if _, err := cached.Load(ctx, "u"); err != nil {
			t.Fatalf("second load failed: %v", err)
		}
		if inner.loads != 1 {
			t.Errorf("expected second load to hit the cache, got %d database reads", inner.loads)
		}
	})

	t.Run("unavailable redis degrades to the database", func(t *testing.T) {
		inner := newCountingRepository()
		inner.stored["u"] = sampleState()
		dead := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
		cached := NewCachedSnapshotRepository(inner, dead, time.Hour)

		loaded, err := cached.Load(ctx, "u")
		if err != nil {
			t.Fatalf("load must survive a dead cache, got: %v", err)
		}
		if loaded == nil {
			t.Fatal("expected the database state, got absent")
		}
		if err := cached.Save(ctx, "u", entity.NewState()); err != nil {
			t.Fatalf("save must survive a dead cache, got: %v", err)
		}
	})
}
