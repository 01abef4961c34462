// Package dashboard contains read-only aggregation use cases.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestor-gastos/backend/internal/application/adapter"
	"github.com/gestor-gastos/backend/internal/domain/entity"
)

// GetSummaryInput represents the input for the dashboard summary.
type GetSummaryInput struct {
	UserKey string
	// Year and Month restrict income/expense totals when Month is non-zero;
	// the total balance always covers all accounts.
	Year  int
	Month time.Month
}

// GetSummaryOutput represents the aggregated dashboard figures.
type GetSummaryOutput struct {
	TotalBalance decimal.Decimal
	Income       decimal.Decimal
	Expense      decimal.Decimal
	Net          decimal.Decimal
}

// GetSummaryUseCase derives dashboard totals from the current snapshot.
// Transfers move money between accounts and are excluded from the income and
// expense figures.
type GetSummaryUseCase struct {
	store adapter.StateStore
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(store adapter.StateStore) *GetSummaryUseCase {
	return &GetSummaryUseCase{store: store}
}

// Execute computes the summary.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	state, err := uc.store.GetState(ctx, input.UserKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	income := decimal.Zero
	expense := decimal.Zero
	for _, tx := range state.Transactions {
		if input.Month != 0 && !tx.Date.InMonth(input.Year, input.Month) {
			continue
		}
		switch tx.Type {
		case entity.TransactionTypeIncome:
			income = income.Add(tx.Amount)
		case entity.TransactionTypeExpense:
			expense = expense.Add(tx.Amount)
		}
	}

	return &GetSummaryOutput{
		TotalBalance: state.TotalBalance(),
		Income:       income,
		Expense:      expense,
		Net:          income.Sub(expense),
	}, nil
}
