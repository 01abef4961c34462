package category

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gestor-gastos/backend/internal/application/engine"
	"github.com/gestor-gastos/backend/internal/domain/entity"
	domainerror "github.com/gestor-gastos/backend/internal/domain/error"
	"github.com/gestor-gastos/backend/internal/domain/event"
)

type fakeStore struct {
	state      entity.State
	dispatched []event.Event
}

func (f *fakeStore) Initialize(_ context.Context, _ string) (entity.State, error) {
	return f.state.Clone(), nil
}

func (f *fakeStore) GetState(_ context.Context, _ string) (entity.State, error) {
	return f.state.Clone(), nil
}

func (f *fakeStore) Dispatch(_ context.Context, _ string, ev event.Event) (entity.State, error) {
	f.state = engine.Apply(f.state, ev)
	f.dispatched = append(f.dispatched, ev)
	return f.state.Clone(), nil
}

func (f *fakeStore) Subscribe(_ context.Context, _ string) (<-chan entity.State, func(), error) {
	ch := make(chan entity.State)
	return ch, func() {}, nil
}

func TestCreateCategory_Execute(t *testing.T) {
	t.Run("creates an income category", func(t *testing.T) {
		store := &fakeStore{state: entity.NewState()}
		uc := NewCreateCategoryUseCase(store)

		out, err := uc.Execute(context.Background(), CreateCategoryInput{
			UserKey: "u",
			Name:    "Salary",
			Type:    entity.CategoryTypeIncome,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.ID == "" {
			t.Error("expected a generated category id")
		}

		cat, ok := store.state.Category(out.Category.ID)
		if !ok {
			t.Fatal("category not committed to state")
		}
		if cat.Type != entity.CategoryTypeIncome {
			t.Errorf("expected INCOME type, got %s", cat.Type)
		}
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		store := &fakeStore{state: entity.NewState()}
		uc := NewCreateCategoryUseCase(store)

		_, err := uc.Execute(context.Background(), CreateCategoryInput{
			UserKey: "u",
			Name:    "  ",
			Type:    entity.CategoryTypeExpense,
		})
		if !errors.Is(err, domainerror.ErrCategoryNameRequired) {
			t.Fatalf("expected ErrCategoryNameRequired, got %v", err)
		}
		if len(store.dispatched) != 0 {
			t.Error("rejected input must not reach the engine")
		}
	})

	t.Run("rejects a name over the length limit", func(t *testing.T) {
		store := &fakeStore{state: entity.NewState()}
		uc := NewCreateCategoryUseCase(store)

		_, err := uc.Execute(context.Background(), CreateCategoryInput{
			UserKey: "u",
			Name:    strings.Repeat("x", MaxCategoryNameLength+1),
			Type:    entity.CategoryTypeExpense,
		})
		if !errors.Is(err, domainerror.ErrCategoryNameRequired) {
			t.Fatalf("expected ErrCategoryNameRequired, got %v", err)
		}
	})

	t.Run("rejects a type outside income and expense", func(t *testing.T) {
		store := &fakeStore{state: entity.NewState()}
		uc := NewCreateCategoryUseCase(store)

		_, err := uc.Execute(context.Background(), CreateCategoryInput{
			UserKey: "u",
			Name:    "Loans",
			Type:    entity.CategoryType("TRANSFER"),
		})
		if !errors.Is(err, domainerror.ErrInvalidCategoryType) {
			t.Fatalf("expected ErrInvalidCategoryType, got %v", err)
		}
		if len(store.dispatched) != 0 {
			t.Error("rejected input must not reach the engine")
		}
	})
}
