package db

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	types "github.com/yungbote/nutrilog-backend/internal/domain"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), gormLogger.Default.LogMode(gormLogger.Silent))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestAutoMigrateAllIdempotent(t *testing.T) {
	db := openMemory(t)
	if err := AutoMigrateAll(db); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}
	if err := AutoMigrateAll(db); err != nil {
		t.Fatalf("AutoMigrateAll (second run): %v", err)
	}
}

func TestMealSlotUniqueAmongLiveRows(t *testing.T) {
	db := openMemory(t)
	if err := AutoMigrateAll(db); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}

	userID := uuid.New()
	day := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	first := &types.Meal{UserID: userID, Type: types.MealTypeLunch, Name: "lunch", Date: day}
	if err := db.Create(first).Error; err != nil {
		t.Fatalf("create first: %v", err)
	}

	dup := &types.Meal{UserID: userID, Type: types.MealTypeLunch, Name: "lunch", Date: day}
	err := db.Create(dup).Error
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate slot: want=%v got=%v", gorm.ErrDuplicatedKey, err)
	}

	if err := db.Delete(first).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	again := &types.Meal{UserID: userID, Type: types.MealTypeLunch, Name: "lunch", Date: day}
	if err := db.Create(again).Error; err != nil {
		t.Fatalf("create after soft delete: %v", err)
	}
}

func TestBackfillFoodFolding(t *testing.T) {
	db := openMemory(t)
	if err := AutoMigrateAll(db); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}

	food := &types.FoodRecord{Name: "Čokoláda", Calories: 540}
	if err := db.Create(food).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := db.Model(food).UpdateColumn("name_folded", "").Error; err != nil {
		t.Fatalf("clear name_folded: %v", err)
	}

	if err := BackfillFoodFolding(db); err != nil {
		t.Fatalf("BackfillFoodFolding: %v", err)
	}
	var got types.FoodRecord
	if err := db.First(&got, "id = ?", food.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.NameFolded != "čokoláda" {
		t.Fatalf("name_folded: want=%q got=%q", "čokoláda", got.NameFolded)
	}
}
