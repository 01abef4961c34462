// Package engine implements the state transition function.
//
// Apply is the single place where account balances change. It is a pure
// function over the closed event set: it performs no I/O, never blocks and
// never fails for a recognized event. Callers that need validation (unknown
// references, duplicate ids, malformed input) do it before dispatching; the
// engine itself tolerates anything and degrades to a no-op.
package engine

import (
	"github.com/gestor-gastos/backend/internal/domain/entity"
	"github.com/gestor-gastos/backend/internal/domain/event"
)

// Apply computes the next state from the current state and one event.
//
// The returned state shares no backing arrays with the input: every
// transition is copy-on-write, so previously handed out snapshots stay
// intact. Unrecognized events return the input state unchanged.
func Apply(state entity.State, ev event.Event) entity.State {
	switch e := ev.(type) {
	case event.AddAccount:
		return addAccount(state, e.Account)
	case event.AddCategory:
		return addCategory(state, e.Category)
	case event.AddTransaction:
		return addTransaction(state, e.Transaction)
	case event.ReplaceState:
		// Restore/import path: the incoming aggregate is trusted verbatim,
		// balances included. No recompute from the transaction log.
		return e.State.Clone().Normalize()
	default:
		return state
	}
}

func addAccount(state entity.State, account entity.Account) entity.State {
	if state.HasAccount(account.ID) {
		return state
	}
	next := state.Clone()
	next.Accounts = append(next.Accounts, account)
	return next
}

func addCategory(state entity.State, category entity.Category) entity.State {
	if state.HasCategory(category.ID) {
		return state
	}
	next := state.Clone()
	next.Categories = append(next.Categories, category)
	return next
}

// addTransaction appends the transaction to the log and adjusts the affected
// balances in one pass, so no observer ever sees a half-applied transfer.
// Account references that match nothing are silently skipped: the boundary
// rejects those before dispatch, and the engine stays total either way.
func addTransaction(state entity.State, tx entity.Transaction) entity.State {
	if state.HasTransaction(tx.ID) {
		return state
	}

	next := state.Clone()
	next.Transactions = append(next.Transactions, tx)

	for i, acc := range next.Accounts {
		switch tx.Type {
		case entity.TransactionTypeIncome:
			if acc.ID == tx.AccountID {
				next.Accounts[i].Balance = acc.Balance.Add(tx.Amount)
			}
		case entity.TransactionTypeExpense:
			if acc.ID == tx.AccountID {
				next.Accounts[i].Balance = acc.Balance.Sub(tx.Amount)
			}
		case entity.TransactionTypeTransfer:
			if acc.ID == tx.AccountID {
				next.Accounts[i].Balance = acc.Balance.Sub(tx.Amount)
			}
			if acc.ID == tx.ToAccountID {
				next.Accounts[i].Balance = acc.Balance.Add(tx.Amount)
			}
		}
	}

	return next
}
