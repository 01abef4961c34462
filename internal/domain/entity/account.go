// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Snapshot and export documents carry amounts as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Account represents a named balance-holding bucket.
//
// Balance is a derived, cached value: the running sum of every transaction
// effect applied to this account, in dispatch order, starting from the seed
// balance given at creation. Only the state engine may change it.
type Account struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// NewAccount creates a new Account entity with a generated id.
// The initial balance is a seed and may be non-zero.
func NewAccount(name string, balance decimal.Decimal) Account {
	return Account{
		ID:      uuid.NewString(),
		Name:    name,
		Balance: balance,
	}
}
