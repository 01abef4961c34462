package dto

import (
	"github.com/shopspring/decimal"

	"github.com/gestor-gastos/backend/internal/domain/entity"
)

// RecordTransactionRequest represents the request body for recording a
// transaction. Amounts are always non-negative; the type carries direction.
type RecordTransactionRequest struct {
	Type        string  `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	Amount      float64 `json:"amount" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description" binding:"max=255"`
	AccountID   string  `json:"accountId" binding:"required"`
	CategoryID  string  `json:"categoryId"`
	ToAccountID string  `json:"toAccountId"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	AccountID   string          `json:"accountId"`
	CategoryID  string          `json:"categoryId,omitempty"`
	ToAccountID string          `json:"toAccountId,omitempty"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a transaction entity to its response DTO.
func ToTransactionResponse(tx entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Date:        tx.Date.String(),
		Description: tx.Description,
		AccountID:   tx.AccountID,
		CategoryID:  tx.CategoryID,
		ToAccountID: tx.ToAccountID,
	}
}

// ToTransactionListResponse converts a slice of transactions to the list DTO.
func ToTransactionListResponse(txs []entity.Transaction) TransactionListResponse {
	transactions := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		transactions[i] = ToTransactionResponse(tx)
	}
	return TransactionListResponse{Transactions: transactions}
}
