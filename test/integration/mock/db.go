// Package mock provides test doubles for the integration suite.
package mock

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gestor-gastos/backend/internal/integration/persistence/model"
)

// Db wraps an in-memory SQLite connection migrated for the snapshot schema.
type Db struct {
	DbConn *gorm.DB
}

// NewDb opens a fresh in-memory database. Every call returns an isolated
// instance so scenarios never see each other's rows.
func NewDb() *Db {
	dbConn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	if err := dbConn.AutoMigrate(&model.SnapshotModel{}); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return &Db{DbConn: dbConn}
}

// Reset removes all persisted snapshots.
func (d *Db) Reset() error {
	return d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.SnapshotModel{}).Error
}

// Close closes the underlying connection.
func (d *Db) Close() error {
	sqlDB, err := d.DbConn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
