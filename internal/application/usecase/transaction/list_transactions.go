package transaction

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gestor-gastos/backend/internal/application/adapter"
	"github.com/gestor-gastos/backend/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserKey string
	// Year and Month filter the listing when Month is non-zero.
	Year  int
	Month time.Month
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []entity.Transaction
}

// ListTransactionsUseCase returns transactions sorted by date descending.
// The log itself keeps append order; ordering by date is a read concern.
type ListTransactionsUseCase struct {
	store adapter.StateStore
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(store adapter.StateStore) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{store: store}
}

// Execute lists the transactions.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	state, err := uc.store.GetState(ctx, input.UserKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	listed := make([]entity.Transaction, 0, len(state.Transactions))
	for _, tx := range state.Transactions {
		if input.Month != 0 && !tx.Date.InMonth(input.Year, input.Month) {
			continue
		}
		listed = append(listed, tx)
	}

	// Stable sort: transactions on the same day stay in append order.
	sort.SliceStable(listed, func(i, j int) bool {
		return listed[i].Date.Compare(listed[j].Date) > 0
	})

	return &ListTransactionsOutput{Transactions: listed}, nil
}
