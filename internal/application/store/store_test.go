package store

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestor-gastos/backend/internal/domain/entity"
	"github.com/gestor-gastos/backend/internal/domain/event"
)

// fakeSnapshotRepository records saves in order and can be primed with a
// stored state or forced to fail.
type fakeSnapshotRepository struct {
	mu       sync.Mutex
	stored   map[string]entity.State
	saves    []entity.State
	failSave bool
	saved    chan struct{}
}

func newFakeRepo() *fakeSnapshotRepository {
	return &fakeSnapshotRepository{
		stored: make(map[string]entity.State),
		saved:  make(chan struct{}, 64),
	}
}

func (f *fakeSnapshotRepository) Load(_ context.Context, key string) (*entity.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if state, ok := f.stored[key]; ok {
		s := state.Clone()
		return &s, nil
	}
	return nil, nil
}

func (f *fakeSnapshotRepository) Save(_ context.Context, key string, state entity.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return errors.New("storage unavailable")
	}
	f.stored[key] = state.Clone()
	f.saves = append(f.saves, state.Clone())
	select {
	case f.saved <- struct{}{}:
	default:
	}
	return nil
}

func (f *fakeSnapshotRepository) lastSave() (entity.State, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.saves) == 0 {
		return entity.State{}, false
	}
	return f.saves[len(f.saves)-1], true
}

func addAccountEvent(id string, balance int64) event.Event {
	return event.AddAccount{Account: entity.Account{
		ID:      id,
		Name:    "Account " + id,
		Balance: decimal.NewFromInt(balance),
	}}
}

func TestStore_InitializeEmpty(t *testing.T) {
	s := New(newFakeRepo())
	defer s.Close()

	state, err := s.Initialize(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Accounts) != 0 || len(state.Categories) != 0 || len(state.Transactions) != 0 {
		t.Errorf("expected empty aggregate, got %+v", state)
	}
	if state.Accounts == nil || state.Categories == nil || state.Transactions == nil {
		t.Error("expected non-nil sequences in the empty aggregate")
	}
}

func TestStore_InitializeFromPersisted(t *testing.T) {
	repo := newFakeRepo()
	repo.stored["user@example.com"] = entity.State{
		Accounts: []entity.Account{{ID: "a1", Name: "Cash", Balance: decimal.NewFromInt(100)}},
	}

	s := New(repo)
	defer s.Close()

	state, err := s.Initialize(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Accounts) != 1 || state.Accounts[0].ID != "a1" {
		t.Errorf("expected persisted account restored, got %+v", state.Accounts)
	}
	if state.Transactions == nil {
		t.Error("expected missing sequences normalized on load")
	}
}

func TestStore_DispatchVisibleImmediately(t *testing.T) {
	s := New(newFakeRepo())
	defer s.Close()

	ctx := context.Background()
	if _, err := s.Dispatch(ctx, "u", addAccountEvent("a1", 100)); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	state, err := s.GetState(ctx, "u")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Accounts) != 1 {
		t.Errorf("expected dispatched account visible, got %d accounts", len(state.Accounts))
	}
}

func TestStore_ReadsAreIdempotent(t *testing.T) {
	s := New(newFakeRepo())
	defer s.Close()

	ctx := context.Background()
	if _, err := s.Dispatch(ctx, "u", addAccountEvent("a1", 100)); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	first, _ := s.GetState(ctx, "u")
	second, _ := s.GetState(ctx, "u")
	if !reflect.DeepEqual(first, second) {
		t.Error("expected equal snapshots for consecutive reads without dispatch")
	}
}

func TestStore_SnapshotsAreIsolated(t *testing.T) {
	s := New(newFakeRepo())
	defer s.Close()

	ctx := context.Background()
	if _, err := s.Dispatch(ctx, "u", addAccountEvent("a1", 100)); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	snapshot, _ := s.GetState(ctx, "u")
	snapshot.Accounts[0].Name = "tampered"

	fresh, _ := s.GetState(ctx, "u")
	if fresh.Accounts[0].Name != "Account a1" {
		t.Error("mutating a returned snapshot leaked into the store")
	}
}

func TestStore_PersistsLatestStateOnClose(t *testing.T) {
	repo := newFakeRepo()
	s := New(repo)

	ctx := context.Background()
	for i, id := range []string{"a1", "a2", "a3"} {
		if _, err := s.Dispatch(ctx, "u", addAccountEvent(id, int64(i))); err != nil {
			t.Fatalf("dispatch failed: %v", err)
		}
	}
	want, _ := s.GetState(ctx, "u")

	s.Close()

	last, ok := repo.lastSave()
	if !ok {
		t.Fatal("expected at least one persisted snapshot")
	}
	if !reflect.DeepEqual(last, want) {
		t.Errorf("expected final persisted state to match last dispatch\nwant %+v\ngot  %+v", want, last)
	}
}

func TestStore_PersistedStatesAreMonotonic(t *testing.T) {
	repo := newFakeRepo()
	s := New(repo)

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		if _, err := s.Dispatch(ctx, "u", addAccountEvent(string(rune('a'+i)), 1)); err != nil {
			t.Fatalf("dispatch failed: %v", err)
		}
	}
	s.Close()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	// Coalescing may skip intermediates, but persisted states must never go
	// backwards relative to dispatch order.
	for i := 1; i < len(repo.saves); i++ {
		if len(repo.saves[i].Accounts) < len(repo.saves[i-1].Accounts) {
			t.Fatalf("persisted state regressed at write %d", i)
		}
	}
}

func TestStore_PersistenceFailureDoesNotRollBack(t *testing.T) {
	repo := newFakeRepo()
	repo.failSave = true
	s := New(repo)
	defer s.Close()

	ctx := context.Background()
	if _, err := s.Dispatch(ctx, "u", addAccountEvent("a1", 100)); err != nil {
		t.Fatalf("dispatch must not surface persistence failures, got: %v", err)
	}

	state, _ := s.GetState(ctx, "u")
	if len(state.Accounts) != 1 {
		t.Error("in-memory state must remain authoritative when persistence fails")
	}
}

func TestStore_SubscribeReceivesCommittedTransitions(t *testing.T) {
	s := New(newFakeRepo())
	defer s.Close()

	ctx := context.Background()
	ch, cancel, err := s.Subscribe(ctx, "u")
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel()

	if _, err := s.Dispatch(ctx, "u", addAccountEvent("a1", 100)); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	select {
	case snap := <-ch:
		if len(snap.Accounts) != 1 {
			t.Errorf("expected snapshot with 1 account, got %d", len(snap.Accounts))
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for subscription snapshot")
	}
}

func TestStore_SlowSubscriberSeesLatestSnapshot(t *testing.T) {
	s := New(newFakeRepo())
	defer s.Close()

	ctx := context.Background()
	ch, cancel, err := s.Subscribe(ctx, "u")
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel()

	for i, id := range []string{"a1", "a2", "a3"} {
		if _, err := s.Dispatch(ctx, "u", addAccountEvent(id, int64(i))); err != nil {
			t.Fatalf("dispatch failed: %v", err)
		}
	}

	select {
	case snap := <-ch:
		if len(snap.Accounts) != 3 {
			t.Errorf("expected the latest snapshot (3 accounts), got %d", len(snap.Accounts))
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for subscription snapshot")
	}
}
