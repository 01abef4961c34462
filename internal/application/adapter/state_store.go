package adapter

import (
	"context"

	"github.com/gestor-gastos/backend/internal/domain/entity"
	"github.com/gestor-gastos/backend/internal/domain/event"
)

// StateStore owns the live State per user key and is the only mutation path.
type StateStore interface {
	// Initialize loads the last persisted state for the user, or starts from
	// the empty aggregate when none exists.
	Initialize(ctx context.Context, userKey string) (entity.State, error)

	// GetState returns the current snapshot. Always a fully consistent value.
	GetState(ctx context.Context, userKey string) (entity.State, error)

	// Dispatch applies the event and commits the resulting state. The new
	// snapshot is visible to the next read immediately; persistence happens
	// asynchronously. The committed state is returned.
	Dispatch(ctx context.Context, userKey string, ev event.Event) (entity.State, error)

	// Subscribe delivers a snapshot for every committed transition until the
	// returned cancel function is called. Slow consumers only ever miss
	// intermediate snapshots, never the latest one.
	Subscribe(ctx context.Context, userKey string) (<-chan entity.State, func(), error)
}
