package entity

import "github.com/shopspring/decimal"

// State is the aggregate of all accounts, categories and transactions for
// one user at a point in time. Sequences keep insertion order for accounts
// and categories and append order for transactions; ids are unique within
// each sequence.
//
// State values are treated as immutable snapshots: the state engine builds a
// new State for every transition instead of mutating in place, so observers
// always see a fully consistent aggregate.
type State struct {
	Accounts     []Account     `json:"accounts"`
	Categories   []Category    `json:"categories"`
	Transactions []Transaction `json:"transactions"`
}

// NewState returns the empty aggregate.
func NewState() State {
	return State{
		Accounts:     []Account{},
		Categories:   []Category{},
		Transactions: []Transaction{},
	}
}

// Normalize replaces nil sequences with empty ones so that snapshots always
// serialize the three top-level fields as arrays.
func (s State) Normalize() State {
	if s.Accounts == nil {
		s.Accounts = []Account{}
	}
	if s.Categories == nil {
		s.Categories = []Category{}
	}
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	return s
}

// Clone returns a deep copy of the state. The copy shares no backing arrays
// with the receiver, so it can be handed to observers safely.
func (s State) Clone() State {
	next := State{
		Accounts:     make([]Account, len(s.Accounts)),
		Categories:   make([]Category, len(s.Categories)),
		Transactions: make([]Transaction, len(s.Transactions)),
	}
	copy(next.Accounts, s.Accounts)
	copy(next.Categories, s.Categories)
	copy(next.Transactions, s.Transactions)
	return next
}

// Account looks up an account by id.
func (s State) Account(id string) (Account, bool) {
	for _, a := range s.Accounts {
		if a.ID == id {
			return a, true
		}
	}
	return Account{}, false
}

// Category looks up a category by id.
func (s State) Category(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// HasAccount reports whether an account with the given id exists.
func (s State) HasAccount(id string) bool {
	_, ok := s.Account(id)
	return ok
}

// HasCategory reports whether a category with the given id exists.
func (s State) HasCategory(id string) bool {
	_, ok := s.Category(id)
	return ok
}

// HasTransaction reports whether a transaction with the given id exists.
func (s State) HasTransaction(id string) bool {
	for _, t := range s.Transactions {
		if t.ID == id {
			return true
		}
	}
	return false
}

// TotalBalance returns the sum of all account balances.
func (s State) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.Accounts {
		total = total.Add(a.Balance)
	}
	return total
}
