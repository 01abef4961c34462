package statefile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gestor-gastos/backend/internal/application/adapter"
	"github.com/gestor-gastos/backend/internal/domain/entity"
	domainerror "github.com/gestor-gastos/backend/internal/domain/error"
	"github.com/gestor-gastos/backend/internal/domain/event"
)

// ImportStateInput represents the input for a state import.
type ImportStateInput struct {
	UserKey  string
	Document []byte
	// Confirmed must be true: import discards the user's current state.
	Confirmed bool
}

// ImportStateOutput represents the output of a state import.
type ImportStateOutput struct {
	State entity.State
}

// importDocument mirrors the export layout with pointer fields so that a
// missing top-level field is distinguishable from an empty one.
type importDocument struct {
	Accounts     *[]entity.Account     `json:"accounts"`
	Categories   *[]entity.Category    `json:"categories"`
	Transactions *[]entity.Transaction `json:"transactions"`
}

// ImportStateUseCase replaces the user's state with an imported document.
// On any validation failure the current state is left untouched; the
// ReplaceState event is only dispatched for a fully valid document.
type ImportStateUseCase struct {
	store adapter.StateStore
}

// NewImportStateUseCase creates a new ImportStateUseCase instance.
func NewImportStateUseCase(store adapter.StateStore) *ImportStateUseCase {
	return &ImportStateUseCase{store: store}
}

// Execute validates the document and performs the import.
func (uc *ImportStateUseCase) Execute(ctx context.Context, input ImportStateInput) (*ImportStateOutput, error) {
	if !input.Confirmed {
		return nil, domainerror.NewSnapshotError(
			domainerror.ErrCodeImportNotConfirmed,
			"import replaces all current data and requires explicit confirmation",
			domainerror.ErrImportNotConfirmed,
		)
	}

	var doc importDocument
	if err := json.Unmarshal(input.Document, &doc); err != nil {
		return nil, domainerror.NewSnapshotError(
			domainerror.ErrCodeSnapshotMalformed,
			"document is not a valid state export",
			fmt.Errorf("%w: %w", domainerror.ErrSnapshotMalformed, err),
		)
	}
	if doc.Accounts == nil || doc.Categories == nil || doc.Transactions == nil {
		return nil, domainerror.NewSnapshotError(
			domainerror.ErrCodeSnapshotMissingFields,
			"document must contain accounts, categories and transactions",
			domainerror.ErrSnapshotMissingFields,
		)
	}

	// The imported aggregate is trusted verbatim, balances included.
	state := entity.State{
		Accounts:     *doc.Accounts,
		Categories:   *doc.Categories,
		Transactions: *doc.Transactions,
	}.Normalize()

	next, err := uc.store.Dispatch(ctx, input.UserKey, event.ReplaceState{State: state})
	if err != nil {
		return nil, fmt.Errorf("failed to import state: %w", err)
	}

	return &ImportStateOutput{State: next}, nil
}
