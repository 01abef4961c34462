// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gestor-gastos/backend/internal/application/adapter"
	"github.com/gestor-gastos/backend/internal/domain/entity"
	domainerror "github.com/gestor-gastos/backend/internal/domain/error"
	"github.com/gestor-gastos/backend/internal/domain/event"
)

// RecordTransactionInput represents the input for recording a transaction.
type RecordTransactionInput struct {
	UserKey     string
	Type        entity.TransactionType
	Amount      decimal.Decimal
	Date        entity.Date
	Description string
	AccountID   string
	CategoryID  string
	ToAccountID string
}

// RecordTransactionOutput represents the output of recording a transaction.
type RecordTransactionOutput struct {
	Transaction entity.Transaction
}

// RecordTransactionUseCase validates a transaction against the current state
// and dispatches it. All referential checks live here: the engine applies
// whatever it is given, so nothing invalid may pass this boundary.
type RecordTransactionUseCase struct {
	store adapter.StateStore
}

// NewRecordTransactionUseCase creates a new RecordTransactionUseCase instance.
func NewRecordTransactionUseCase(store adapter.StateStore) *RecordTransactionUseCase {
	return &RecordTransactionUseCase{store: store}
}

// Execute validates and records the transaction.
func (uc *RecordTransactionUseCase) Execute(ctx context.Context, input RecordTransactionInput) (*RecordTransactionOutput, error) {
	if err := validateShape(input); err != nil {
		return nil, err
	}

	state, err := uc.store.GetState(ctx, input.UserKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}
	if err := validateReferences(state, input); err != nil {
		return nil, err
	}

	tx := entity.NewTransaction(
		input.Type,
		input.Amount,
		input.Date,
		input.Description,
		input.AccountID,
		input.CategoryID,
		input.ToAccountID,
	)

	if _, err := uc.store.Dispatch(ctx, input.UserKey, event.AddTransaction{Transaction: tx}); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	return &RecordTransactionOutput{Transaction: tx}, nil
}

// validateShape checks the structural invariants that need no state access.
func validateShape(input RecordTransactionInput) error {
	switch input.Type {
	case entity.TransactionTypeIncome, entity.TransactionTypeExpense, entity.TransactionTypeTransfer:
	default:
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'INCOME', 'EXPENSE' or 'TRANSFER'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	// Direction is encoded by the type, never by sign.
	if input.Amount.IsNegative() {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"transaction amount must not be negative",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if input.Date.IsZero() {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidTransactionDate,
			"transaction date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	if input.Type == entity.TransactionTypeTransfer {
		if input.ToAccountID == "" {
			return domainerror.NewLedgerError(
				domainerror.ErrCodeTransferMissingDestination,
				"transfer requires a destination account",
				domainerror.ErrTransferMissingDestination,
			)
		}
		if input.ToAccountID == input.AccountID {
			return domainerror.NewLedgerError(
				domainerror.ErrCodeTransferSameAccount,
				"transfer source and destination must differ",
				domainerror.ErrTransferSameAccount,
			)
		}
		if input.CategoryID != "" {
			return domainerror.NewLedgerError(
				domainerror.ErrCodeTransferWithCategory,
				"transfers cannot carry a category",
				domainerror.ErrTransferWithCategory,
			)
		}
	}

	return nil
}

// validateReferences checks that every referenced entity exists and matches.
// The engine would silently skip an unmatched account; rejecting here keeps
// that leniency out of reach of API callers.
func validateReferences(state entity.State, input RecordTransactionInput) error {
	if !state.HasAccount(input.AccountID) {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeAccountNotFound,
			fmt.Sprintf("account %q does not exist", input.AccountID),
			domainerror.ErrAccountNotFound,
		)
	}

	if input.Type == entity.TransactionTypeTransfer && !state.HasAccount(input.ToAccountID) {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeAccountNotFound,
			fmt.Sprintf("destination account %q does not exist", input.ToAccountID),
			domainerror.ErrAccountNotFound,
		)
	}

	if input.CategoryID != "" {
		cat, ok := state.Category(input.CategoryID)
		if !ok {
			return domainerror.NewLedgerError(
				domainerror.ErrCodeCategoryNotFound,
				fmt.Sprintf("category %q does not exist", input.CategoryID),
				domainerror.ErrCategoryNotFound,
			)
		}
		if string(cat.Type) != string(input.Type) {
			return domainerror.NewLedgerError(
				domainerror.ErrCodeCategoryTypeMismatch,
				fmt.Sprintf("category %q classifies %s transactions", cat.Name, cat.Type),
				domainerror.ErrCategoryTypeMismatch,
			)
		}
	}

	return nil
}
