package dto

import (
	"github.com/shopspring/decimal"

	"github.com/gestor-gastos/backend/internal/domain/entity"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	// Balance seeds the account and may be any non-negative starting amount.
	Balance float64 `json:"balance"`
}

// AccountResponse represents a single account in API responses.
type AccountResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts an account entity to its response DTO.
func ToAccountResponse(acc entity.Account) AccountResponse {
	return AccountResponse{
		ID:      acc.ID,
		Name:    acc.Name,
		Balance: acc.Balance,
	}
}
