// Package model defines database models for persistence layer.
package model

import "time"

// SnapshotModel represents the snapshots table: one serialized state
// document per user key, fully overwritten on every save.
type SnapshotModel struct {
	UserKey   string    `gorm:"type:varchar(255);primaryKey"`
	Document  []byte    `gorm:"type:blob;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the SnapshotModel.
func (SnapshotModel) TableName() string {
	return "snapshots"
}
