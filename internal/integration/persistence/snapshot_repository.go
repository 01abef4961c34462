// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gestor-gastos/backend/internal/application/adapter"
	"github.com/gestor-gastos/backend/internal/domain/entity"
	"github.com/gestor-gastos/backend/internal/integration/persistence/model"
)

// snapshotRepository implements the adapter.SnapshotRepository interface on
// top of a single-row-per-user table.
type snapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new snapshot repository instance.
func NewSnapshotRepository(db *gorm.DB) adapter.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Load retrieves the stored state for the key. A missing row and a row whose
// document no longer parses are both reported as absent: losing a corrupt
// snapshot beats refusing to start.
func (r *snapshotRepository) Load(ctx context.Context, key string) (*entity.State, error) {
	var m model.SnapshotModel
	result := r.db.WithContext(ctx).Where("user_key = ?", key).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	var state entity.State
	if err := json.Unmarshal(m.Document, &state); err != nil {
		slog.Warn("Stored snapshot is malformed, treating as absent",
			"user", key,
			"error", err,
		)
		return nil, nil
	}

	state = state.Normalize()
	return &state, nil
}

// Save serializes the state and overwrites the row for the key.
func (r *snapshotRepository) Save(ctx context.Context, key string, state entity.State) error {
	document, err := json.Marshal(state.Normalize())
	if err != nil {
		return err
	}

	m := model.SnapshotModel{
		UserKey:   key,
		Document:  document,
		UpdatedAt: time.Now().UTC(),
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(&m)
	return result.Error
}
