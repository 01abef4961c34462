package persistence

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gestor-gastos/backend/internal/domain/entity"
	"github.com/gestor-gastos/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&model.SnapshotModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func sampleState() entity.State {
	return entity.State{
		Accounts: []entity.Account{
			{ID: "a1", Name: "Cash", Balance: decimal.NewFromInt(150)},
		},
		Categories: []entity.Category{
			{ID: "c1", Name: "Salary", Type: entity.CategoryTypeIncome},
		},
		Transactions: []entity.Transaction{
			{
				ID:          "t1",
				Type:        entity.TransactionTypeIncome,
				Amount:      decimal.NewFromInt(50),
				Date:        entity.NewDate(2024, time.March, 15),
				Description: "march salary",
				AccountID:   "a1",
				CategoryID:  "c1",
			},
		},
	}
}

func TestSnapshotRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("load of an unknown key is absent", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))

		state, err := repo.Load(ctx, "nobody")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state != nil {
			t.Errorf("expected absent, got %+v", state)
		}
	})

	t.Run("save then load round-trips the state", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))

		if err := repo.Save(ctx, "u", sampleState()); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		loaded, err := repo.Load(ctx, "u")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if loaded == nil {
			t.Fatal("expected stored state, got absent")
		}
		if !reflect.DeepEqual(*loaded, sampleState().Normalize()) {
			t.Errorf("round trip altered the state\nwant %+v\ngot  %+v", sampleState(), *loaded)
		}
	})

	t.Run("save fully overwrites the prior value", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))

		if err := repo.Save(ctx, "u", sampleState()); err != nil {
			t.Fatalf("first save failed: %v", err)
		}
		if err := repo.Save(ctx, "u", entity.NewState()); err != nil {
			t.Fatalf("second save failed: %v", err)
		}

		loaded, err := repo.Load(ctx, "u")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if len(loaded.Accounts) != 0 || len(loaded.Transactions) != 0 {
			t.Errorf("expected the later save to win, got %+v", *loaded)
		}
	})

	t.Run("keys are isolated from each other", func(t *testing.T) {
		repo := NewSnapshotRepository(newTestDB(t))

		if err := repo.Save(ctx, "alice", sampleState()); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		state, err := repo.Load(ctx, "bob")
		if err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if state != nil {
			t.Error("expected bob's slot to be absent")
		}
	})

	t.Run("malformed stored document is treated as absent", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewSnapshotRepository(db)

		corrupt := model.SnapshotModel{
			UserKey:   "u",
			Document:  []byte("{broken"),
			UpdatedAt: time.Now().UTC(),
		}
		if err := db.Create(&corrupt).Error; err != nil {
			t.Fatalf("failed to seed corrupt row: %v", err)
		}

		state, err := repo.Load(ctx, "u")
		if err != nil {
			t.Fatalf("malformed data must not be a fatal error, got: %v", err)
		}
		if state != nil {
			t.Errorf("expected absent, got %+v", state)
		}
	})
}
