// Package error defines domain-specific errors for the Gestor de Gastos backend.
package error

import "errors"

// Ledger domain errors.
var (
	// ErrAccountNotFound is returned when a referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrAccountAlreadyExists is returned when an account id is already taken.
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrAccountNameRequired is returned when an account name is empty.
	ErrAccountNameRequired = errors.New("account name is required")

	// ErrCategoryNotFound is returned when a referenced category does not exist.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameRequired is returned when a category name is empty.
	ErrCategoryNameRequired = errors.New("category name is required")

	// ErrInvalidCategoryType is returned when the category type is not income or expense.
	ErrInvalidCategoryType = errors.New("invalid category type")

	// ErrCategoryTypeMismatch is returned when a transaction references a category of another kind.
	ErrCategoryTypeMismatch = errors.New("category type does not match transaction type")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionAmount is returned when the transaction amount is negative.
	ErrInvalidTransactionAmount = errors.New("transaction amount must not be negative")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrTransferMissingDestination is returned when a transfer has no destination account.
	ErrTransferMissingDestination = errors.New("transfer requires a destination account")

	// ErrTransferSameAccount is returned when a transfer's source and destination are the same account.
	ErrTransferSameAccount = errors.New("transfer source and destination must differ")

	// ErrTransferWithCategory is returned when a transfer carries a category.
	ErrTransferWithCategory = errors.New("transfers cannot be categorized")

	// ErrDuplicateTransactionID is returned when a transaction id is already in the log.
	ErrDuplicateTransactionID = errors.New("transaction id already recorded")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LDG-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeAccountNameRequired         LedgerErrorCode = "LDG-010001"
	ErrCodeCategoryNameRequired        LedgerErrorCode = "LDG-010002"
	ErrCodeInvalidCategoryType         LedgerErrorCode = "LDG-010003"
	ErrCodeInvalidTransactionType      LedgerErrorCode = "LDG-010004"
	ErrCodeInvalidTransactionAmount    LedgerErrorCode = "LDG-010005"
	ErrCodeInvalidTransactionDate      LedgerErrorCode = "LDG-010006"
	ErrCodeTransferMissingDestination  LedgerErrorCode = "LDG-010007"
	ErrCodeTransferSameAccount         LedgerErrorCode = "LDG-010008"
	ErrCodeTransferWithCategory        LedgerErrorCode = "LDG-010009"
	ErrCodeMissingLedgerFields         LedgerErrorCode = "LDG-010010"

	// Reference errors (02XXXX)
	ErrCodeAccountNotFound        LedgerErrorCode = "LDG-020001"
	ErrCodeCategoryNotFound       LedgerErrorCode = "LDG-020002"
	ErrCodeCategoryTypeMismatch   LedgerErrorCode = "LDG-020003"
	ErrCodeAccountAlreadyExists   LedgerErrorCode = "LDG-020004"
	ErrCodeDuplicateTransactionID LedgerErrorCode = "LDG-020005"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
