// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/gestor-gastos/backend/internal/domain/entity"
)

// SnapshotRepository durably stores one serialized State per user key.
type SnapshotRepository interface {
	// Load returns the previously stored state for the key, or nil when none
	// exists. A stored document that no longer parses is treated as absent,
	// never as a fatal error.
	Load(ctx context.Context, key string) (*entity.State, error)

	// Save serializes the state and stores it under the key, fully
	// overwriting any prior value.
	Save(ctx context.Context, key string, state entity.State) error
}
