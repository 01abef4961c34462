// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of a transaction.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "INCOME"
	TransactionTypeExpense  TransactionType = "EXPENSE"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// Transaction is an immutable, dated event affecting one or two account
// balances. Amount is always non-negative: the direction of the effect is
// encoded by Type, not by sign. Once recorded a transaction is never edited
// or deleted; corrections require a compensating entry.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	AccountID   string          `json:"accountId"`
	CategoryID  string          `json:"categoryId,omitempty"`
	ToAccountID string          `json:"toAccountId,omitempty"`
}

// NewTransaction creates a new Transaction entity with a generated id.
// CategoryID and toAccountID may be empty depending on the transaction type;
// the boundary validates that before dispatch.
func NewTransaction(
	transactionType TransactionType,
	amount decimal.Decimal,
	date Date,
	description string,
	accountID string,
	categoryID string,
	toAccountID string,
) Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		Type:        transactionType,
		Amount:      amount,
		Date:        date,
		Description: description,
		AccountID:   accountID,
		CategoryID:  categoryID,
		ToAccountID: toAccountID,
	}
}
