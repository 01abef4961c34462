// Package event defines the closed set of events the state engine accepts.
//
// Events form a tagged union: the engine's transition function switches over
// the concrete types and is exhaustive over this set. Anything outside the
// set is ignored, never an error.
package event

import "github.com/gestor-gastos/backend/internal/domain/entity"

// Event is the sealed marker interface for state transitions.
type Event interface {
	isEvent()
}

// AddAccount appends a new account to the aggregate. The account's seed
// balance is taken verbatim; no balance recompute happens.
type AddAccount struct {
	Account entity.Account
}

// AddCategory appends a new category to the aggregate.
type AddCategory struct {
	Category entity.Category
}

// AddTransaction appends a transaction to the log and adjusts the affected
// account balances in the same transition.
type AddTransaction struct {
	Transaction entity.Transaction
}

// ReplaceState discards the current aggregate and installs the given one
// verbatim, balances included. Used for restore and import.
type ReplaceState struct {
	State entity.State
}

func (AddAccount) isEvent()     {}
func (AddCategory) isEvent()    {}
func (AddTransaction) isEvent() {}
func (ReplaceState) isEvent()   {}
