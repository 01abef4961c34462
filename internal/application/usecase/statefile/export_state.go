// Package statefile contains the export/import use cases for whole-state
// documents.
//
// The document layout matches the persisted snapshot exactly: a single JSON
// object with top-level accounts, categories and transactions arrays. Export
// and import must round-trip through this format unchanged.
package statefile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gestor-gastos/backend/internal/application/adapter"
)

// ExportFilename is the suggested filename for exported documents.
const ExportFilename = "gestor-gastos-backup.json"

// ExportStateInput represents the input for a state export.
type ExportStateInput struct {
	UserKey string
}

// ExportStateOutput represents the output of a state export.
type ExportStateOutput struct {
	// Document is the entire state, pretty-printed.
	Document []byte
	Filename string
}

// ExportStateUseCase produces a downloadable document of the whole state.
type ExportStateUseCase struct {
	store adapter.StateStore
}

// NewExportStateUseCase creates a new ExportStateUseCase instance.
func NewExportStateUseCase(store adapter.StateStore) *ExportStateUseCase {
	return &ExportStateUseCase{store: store}
}

// Execute performs the export.
func (uc *ExportStateUseCase) Execute(ctx context.Context, input ExportStateInput) (*ExportStateOutput, error) {
	state, err := uc.store.GetState(ctx, input.UserKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	document, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize state: %w", err)
	}

	return &ExportStateOutput{
		Document: document,
		Filename: ExportFilename,
	}, nil
}
