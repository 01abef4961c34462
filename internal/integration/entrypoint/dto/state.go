package dto

import (
	"github.com/gestor-gastos/backend/internal/domain/entity"
)

// StateResponse represents the whole user state in API responses. Its layout
// matches the export document so clients can treat both interchangeably.
type StateResponse struct {
	Accounts     []AccountResponse     `json:"accounts"`
	Categories   []CategoryResponse    `json:"categories"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ToStateResponse converts a state aggregate to its response DTO.
func ToStateResponse(state entity.State) StateResponse {
	accounts := make([]AccountResponse, len(state.Accounts))
	for i, acc := range state.Accounts {
		accounts[i] = ToAccountResponse(acc)
	}
	categories := make([]CategoryResponse, len(state.Categories))
	for i, cat := range state.Categories {
		categories[i] = ToCategoryResponse(cat)
	}
	transactions := make([]TransactionResponse, len(state.Transactions))
	for i, tx := range state.Transactions {
		transactions[i] = ToTransactionResponse(tx)
	}
	return StateResponse{
		Accounts:     accounts,
		Categories:   categories,
		Transactions: transactions,
	}
}
