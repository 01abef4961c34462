// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/google/uuid"

// CategoryType represents the kind of transactions a category classifies.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "INCOME"
	CategoryTypeExpense CategoryType = "EXPENSE"
)

// Category classifies income and expense transactions for reporting.
// Categories are immutable once created and carry no arithmetic effect.
type Category struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Type CategoryType `json:"type"`
}

// NewCategory creates a new Category entity with a generated id.
func NewCategory(name string, categoryType CategoryType) Category {
	return Category{
		ID:   uuid.NewString(),
		Name: name,
		Type: categoryType,
	}
}
