// Package store implements the application store: the single owner of the
// live State per user key.
//
// Dispatch is synchronous with respect to the in-memory state; durability is
// asynchronous. One writer goroutine per user drains a latest-state slot, so
// persistence writes for a user are strictly serialized: a write fully
// settles (or fails) before the next one starts, and the last write always
// corresponds to the newest dispatched state. A failed write is reported as
// a durability warning and never rolls back memory — during a session the
// in-memory state is the authority.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gestor-gastos/backend/internal/application/adapter"
	"github.com/gestor-gastos/backend/internal/application/engine"
	"github.com/gestor-gastos/backend/internal/domain/entity"
	"github.com/gestor-gastos/backend/internal/domain/event"
)

// Store manages one live State per user key.
type Store struct {
	repo adapter.SnapshotRepository

	mu     sync.Mutex
	users  map[string]*userState
	closed bool
	wg     sync.WaitGroup
}

// userState holds the live aggregate and persistence machinery for one user.
type userState struct {
	key string

	mu      sync.RWMutex
	state   entity.State
	subs    map[int]chan entity.State
	nextSub int

	// Latest-state slot drained by the writer goroutine. Intermediate states
	// may be coalesced; the slot always holds the newest committed state.
	pendingMu sync.Mutex
	pending   entity.State
	dirty     bool

	notify chan struct{}
	done   chan struct{}
}

// New creates a Store backed by the given snapshot repository.
func New(repo adapter.SnapshotRepository) *Store {
	return &Store{
		repo:  repo,
		users: make(map[string]*userState),
	}
}

// Initialize loads the last persisted state for the user key, or starts from
// the empty aggregate when nothing is stored. Calling it again for an
// already-initialized user returns the current state.
func (s *Store) Initialize(ctx context.Context, userKey string) (entity.State, error) {
	u, err := s.user(ctx, userKey)
	if err != nil {
		return entity.State{}, err
	}
	return u.snapshot(), nil
}

// GetState returns the current snapshot for the user key, initializing the
// user first if needed.
func (s *Store) GetState(ctx context.Context, userKey string) (entity.State, error) {
	u, err := s.user(ctx, userKey)
	if err != nil {
		return entity.State{}, err
	}
	return u.snapshot(), nil
}

// Dispatch applies the event through the engine, commits the result and
// schedules a persistence write. The committed snapshot is returned and is
// visible to any subsequent GetState immediately.
func (s *Store) Dispatch(ctx context.Context, userKey string, ev event.Event) (entity.State, error) {
	u, err := s.user(ctx, userKey)
	if err != nil {
		return entity.State{}, err
	}

	u.mu.Lock()
	next := engine.Apply(u.state, ev)
	u.state = next
	// Publishing under the lock keeps delivery ordered with respect to
	// cancellation; publish itself never blocks.
	for _, ch := range u.subs {
		publish(ch, next.Clone())
	}
	u.mu.Unlock()

	u.enqueue(next)
	return next.Clone(), nil
}

// Subscribe returns a channel that receives a snapshot per committed
// transition and a cancel function. The channel holds at most the latest
// snapshot: a slow consumer skips intermediate states, never the newest.
func (s *Store) Subscribe(ctx context.Context, userKey string) (<-chan entity.State, func(), error) {
	u, err := s.user(ctx, userKey)
	if err != nil {
		return nil, nil, err
	}

	ch := make(chan entity.State, 1)

	u.mu.Lock()
	id := u.nextSub
	u.nextSub++
	u.subs[id] = ch
	u.mu.Unlock()

	cancel := func() {
		u.mu.Lock()
		if _, ok := u.subs[id]; ok {
			delete(u.subs, id)
			close(ch)
		}
		u.mu.Unlock()
	}
	return ch, cancel, nil
}

// Close flushes every pending write and stops the writer goroutines. The
// store must not be used afterwards.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	users := make([]*userState, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.mu.Unlock()

	for _, u := range users {
		close(u.done)
	}
	s.wg.Wait()
}

// user returns the live entry for the key, loading it from the repository on
// first access and starting its writer goroutine.
func (s *Store) user(ctx context.Context, userKey string) (*userState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, fmt.Errorf("store is closed")
	}
	if u, ok := s.users[userKey]; ok {
		return u, nil
	}

	loaded, err := s.repo.Load(ctx, userKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load state for %q: %w", userKey, err)
	}

	state := entity.NewState()
	if loaded != nil {
		state = loaded.Normalize()
	}

	u := &userState{
		key:    userKey,
		state:  state,
		subs:   make(map[int]chan entity.State),
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	s.users[userKey] = u

	s.wg.Add(1)
	go s.writeLoop(u)

	slog.Info("State initialized",
		"user", userKey,
		"accounts", len(state.Accounts),
		"transactions", len(state.Transactions),
	)
	return u, nil
}

// writeLoop serializes persistence for one user. It drains the latest-state
// slot on every notification and performs a final flush on shutdown.
func (s *Store) writeLoop(u *userState) {
	defer s.wg.Done()
	for {
		select {
		case <-u.done:
			s.flush(u)
			return
		case <-u.notify:
			s.flush(u)
		}
	}
}

// flush writes the newest pending state, looping until the slot is clean so
// a state committed during a write is not left behind.
func (s *Store) flush(u *userState) {
	for {
		u.pendingMu.Lock()
		if !u.dirty {
			u.pendingMu.Unlock()
			return
		}
		state := u.pending
		u.dirty = false
		u.pendingMu.Unlock()

		// Detached from the request that triggered the dispatch: the write
		// must settle even after the caller has moved on.
		if err := s.repo.Save(context.Background(), u.key, state); err != nil {
			slog.Warn("Snapshot write failed; in-memory state remains authoritative",
				"user", u.key,
				"error", err,
			)
		}
	}
}

func (u *userState) enqueue(state entity.State) {
	u.pendingMu.Lock()
	u.pending = state
	u.dirty = true
	u.pendingMu.Unlock()

	select {
	case u.notify <- struct{}{}:
	default:
	}
}

func (u *userState) snapshot() entity.State {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.state.Clone()
}

// publish delivers the snapshot without blocking: an unread older snapshot
// is replaced by the newer one.
func publish(ch chan entity.State, state entity.State) {
	for {
		select {
		case ch <- state:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
