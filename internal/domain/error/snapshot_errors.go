// Package error defines domain-specific errors for the Gestor de Gastos backend.
package error

import "errors"

// Snapshot and import/export domain errors.
var (
	// ErrSnapshotMalformed is returned when a document cannot be parsed as a state snapshot.
	ErrSnapshotMalformed = errors.New("snapshot document is malformed")

	// ErrSnapshotMissingFields is returned when a document lacks one of the
	// accounts, categories or transactions fields.
	ErrSnapshotMissingFields = errors.New("snapshot document is missing required fields")

	// ErrImportNotConfirmed is returned when an import is attempted without
	// explicit confirmation. Import discards the current state, so the caller
	// must opt in.
	ErrImportNotConfirmed = errors.New("import requires explicit confirmation")
)

// SnapshotErrorCode defines error codes for snapshot errors.
// Format: SNP-XXYYYY where XX is category and YYYY is specific error.
type SnapshotErrorCode string

const (
	ErrCodeSnapshotMalformed     SnapshotErrorCode = "SNP-010001"
	ErrCodeSnapshotMissingFields SnapshotErrorCode = "SNP-010002"
	ErrCodeImportNotConfirmed    SnapshotErrorCode = "SNP-010003"
)

// SnapshotError represents a snapshot error with code and message.
type SnapshotError struct {
	Code    SnapshotErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SnapshotError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SnapshotError) Unwrap() error {
	return e.Err
}

// NewSnapshotError creates a new SnapshotError with the given code and message.
func NewSnapshotError(code SnapshotErrorCode, message string, err error) *SnapshotError {
	return &SnapshotError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
