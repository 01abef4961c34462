// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/gestor-gastos/backend/internal/application/adapter"
	"github.com/gestor-gastos/backend/internal/domain/entity"
	domainerror "github.com/gestor-gastos/backend/internal/domain/error"
	"github.com/gestor-gastos/backend/internal/domain/event"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	UserKey string
	Name    string
	Type    entity.CategoryType
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	store adapter.StateStore
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(store adapter.StateStore) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{store: store}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeCategoryNameRequired,
			"category name must not be empty",
			domainerror.ErrCategoryNameRequired,
		)
	}
	if len(name) > MaxCategoryNameLength {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeCategoryNameRequired,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameRequired,
		)
	}
	if input.Type != entity.CategoryTypeIncome && input.Type != entity.CategoryTypeExpense {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be 'INCOME' or 'EXPENSE'",
			domainerror.ErrInvalidCategoryType,
		)
	}

	cat := entity.NewCategory(name, input.Type)

	if _, err := uc.store.Dispatch(ctx, input.UserKey, event.AddCategory{Category: cat}); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{Category: cat}, nil
}
