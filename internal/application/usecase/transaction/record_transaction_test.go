package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestor-gastos/backend/internal/application/engine"
	"github.com/gestor-gastos/backend/internal/domain/entity"
	domainerror "github.com/gestor-gastos/backend/internal/domain/error"
	"github.com/gestor-gastos/backend/internal/domain/event"
)

// fakeStore applies events through the real engine so recorded transactions
// behave exactly as they would in production.
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

func storeWithFixtures() *fakeStore {
	return &fakeStore{state: entity.State{
		Accounts: []entity.Account{
			{ID: "a1", Name: "Cash", Balance: decimal.NewFromInt(100)},
			{ID: "a2", Name: "Bank", Balance: decimal.Zero},
		},
		Categories: []entity.Category{
			{ID: "c1", Name: "Salary", Type: entity.CategoryTypeIncome},
			{ID: "c2", Name: "Food", Type: entity.CategoryTypeExpense},
		},
		Transactions: []entity.Transaction{},
	}}
}

func validInput() RecordTransactionInput {
	return RecordTransactionInput{
		UserKey:     "u",
		Type:        entity.TransactionTypeIncome,
		Amount:      decimal.NewFromInt(50),
		Date:        entity.NewDate(2024, time.March, 15),
		Description: "march salary",
		AccountID:   "a1",
		CategoryID:  "c1",
	}
}

func TestRecordTransaction_Execute(t *testing.T) {
	t.Run("records a valid income and updates the balance", func(t *testing.T) {
		store := storeWithFixtures()
		uc := NewRecordTransactionUseCase(store)

		out, err := uc.Execute(context.Background(), validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Transaction.ID == "" {
			t.Error("expected a generated transaction id")
		}

		acc, _ := store.state.Account("a1")
		if !acc.Balance.Equal(decimal.NewFromInt(150)) {
			t.Errorf("expected balance 150, got %s", acc.Balance)
		}
		if len(store.state.Transactions) != 1 {
			t.Errorf("expected 1 transaction in the log, got %d", len(store.state.Transactions))
		}
	})

	t.Run("generated ids are unique per call", func(t *testing.T) {
		store := storeWithFixtures()
		uc := NewRecordTransactionUseCase(store)

		first, err := uc.Execute(context.Background(), validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := uc.Execute(context.Background(), validInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.Transaction.ID == second.Transaction.ID {
			t.Error("expected distinct ids for distinct transactions")
		}
	})

	rejections := []struct {
		name    string
		mutate  func(*RecordTransactionInput)
		wantErr error
	}{
		{
			name:    "unknown transaction type",
			mutate:  func(in *RecordTransactionInput) { in.Type = "REFUND" },
			wantErr: domainerror.ErrInvalidTransactionType,
		},
		{
			name:    "negative amount",
			mutate:  func(in *RecordTransactionInput) { in.Amount = decimal.NewFromInt(-5) },
			wantErr: domainerror.ErrInvalidTransactionAmount,
		},
		{
			name:    "missing date",
			mutate:  func(in *RecordTransactionInput) { in.Date = entity.Date{} },
			wantErr: domainerror.ErrInvalidTransactionDate,
		},
		{
			name: "unknown source account",
			mutate: func(in *RecordTransactionInput) {
				in.AccountID = "ghost"
				in.CategoryID = ""
			},
			wantErr: domainerror.ErrAccountNotFound,
		},
		{
			name:    "unknown category",
			mutate:  func(in *RecordTransactionInput) { in.CategoryID = "ghost" },
			wantErr: domainerror.ErrCategoryNotFound,
		},
		{
			name:    "category kind mismatch",
			mutate:  func(in *RecordTransactionInput) { in.CategoryID = "c2" },
			wantErr: domainerror.ErrCategoryTypeMismatch,
		},
		{
			name: "transfer without destination",
			mutate: func(in *RecordTransactionInput) {
				in.Type = entity.TransactionTypeTransfer
				in.CategoryID = ""
			},
			wantErr: domainerror.ErrTransferMissingDestination,
		},
		{
			name: "transfer to the same account",
			mutate: func(in *RecordTransactionInput) {
				in.Type = entity.TransactionTypeTransfer
				in.CategoryID = ""
				in.ToAccountID = "a1"
			},
			wantErr: domainerror.ErrTransferSameAccount,
		},
		{
			name: "transfer with category",
			mutate: func(in *RecordTransactionInput) {
				in.Type = entity.TransactionTypeTransfer
				in.ToAccountID = "a2"
			},
			wantErr: domainerror.ErrTransferWithCategory,
		},
		{
			name: "transfer to unknown destination",
			mutate: func(in *RecordTransactionInput) {
				in.Type = entity.TransactionTypeTransfer
				in.CategoryID = ""
				in.ToAccountID = "ghost"
			},
			wantErr: domainerror.ErrAccountNotFound,
		},
	}

	for _, tc := range rejections {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			store := storeWithFixtures()
			uc := NewRecordTransactionUseCase(store)

			input := validInput()
			tc.mutate(&input)

			_, err := uc.Execute(context.Background(), input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if len(store.dispatched) != 0 {
				t.Error("rejected input must not reach the engine")
			}
		})
	}

	t.Run("records a valid transfer", func(t *testing.T) {
		store := storeWithFixtures()
		uc := NewRecordTransactionUseCase(store)

		input := validInput()
		input.Type = entity.TransactionTypeTransfer
		input.CategoryID = ""
		input.ToAccountID = "a2"
		input.Amount = decimal.NewFromInt(30)

		if _, err := uc.Execute(context.Background(), input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		a1, _ := store.state.Account("a1")
		a2, _ := store.state.Account("a2")
		if !a1.Balance.Equal(decimal.NewFromInt(70)) || !a2.Balance.Equal(decimal.NewFromInt(30)) {
			t.Errorf("expected 70/30, got %s/%s", a1.Balance, a2.Balance)
		}
	})
}

func TestListTransactions_Execute(t *testing.T) {
	store := storeWithFixtures()
	dates := []entity.Date{
		entity.NewDate(2024, time.March, 10),
		entity.NewDate(2024, time.April, 1),
		entity.NewDate(2024, time.March, 20),
	}
	for i, d := range dates {
		store.state.Transactions = append(store.state.Transactions, entity.Transaction{
			ID:        string(rune('x' + i)),
			Type:      entity.TransactionTypeExpense,
			Amount:    decimal.NewFromInt(1),
			Date:      d,
			AccountID: "a1",
		})
	}

	uc := NewListTransactionsUseCase(store)

	t.Run("sorts by date descending", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListTransactionsInput{UserKey: "u"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transactions) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(out.Transactions))
		}
		for i := 1; i < len(out.Transactions); i++ {
			if out.Transactions[i-1].Date.Compare(out.Transactions[i].Date) < 0 {
				t.Error("expected descending date order")
			}
		}
	})

	t.Run("filters by month", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), ListTransactionsInput{
			UserKey: "u",
			Year:    2024,
			Month:   time.March,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transactions) != 2 {
			t.Errorf("expected 2 March transactions, got %d", len(out.Transactions))
		}
	})
}
