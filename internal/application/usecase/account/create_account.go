// Package account contains account-related use cases.
package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/gestor-gastos/backend/internal/application/adapter"
	"github.com/gestor-gastos/backend/internal/domain/entity"
	domainerror "github.com/gestor-gastos/backend/internal/domain/error"
	"github.com/gestor-gastos/backend/internal/domain/event"
)

// MaxAccountNameLength is the maximum allowed length for account names.
const MaxAccountNameLength = 100

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	UserKey string
	Name    string
	// Balance is the seed balance at creation and may be non-zero.
	Balance decimal.Decimal
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account entity.Account
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	store adapter.StateStore
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(store adapter.StateStore) *CreateAccountUseCase {
	return &CreateAccountUseCase{store: store}
}

// Execute performs the account creation.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeAccountNameRequired,
			"account name must not be empty",
			domainerror.ErrAccountNameRequired,
		)
	}
	if len(name) > MaxAccountNameLength {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeAccountNameRequired,
			fmt.Sprintf("account name must not exceed %d characters", MaxAccountNameLength),
			domainerror.ErrAccountNameRequired,
		)
	}

	acc := entity.NewAccount(name, input.Balance)

	if _, err := uc.store.Dispatch(ctx, input.UserKey, event.AddAccount{Account: acc}); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &CreateAccountOutput{Account: acc}, nil
}
