package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/nutrilog-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.Models()...); err != nil {
		return err
	}
	if err := EnsureMealIndexes(db); err != nil {
		return err
	}
	if err := EnsureFoodIndexes(db); err != nil {
		return err
	}
	return BackfillFoodFolding(db)
}

// EnsureMealIndexes keeps one live meal per (user, type, date).
func EnsureMealIndexes(db *gorm.DB) error {
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_meal_slot
		ON meal (user_id, type, "date")
		WHERE deleted_at IS NULL;
	`).Error; err != nil {
		return fmt.Errorf("create idx_meal_slot: %w", err)
	}
	return nil
}

func EnsureFoodIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_food_name_brand ON food (name, brand);`).Error; err != nil {
		return fmt.Errorf("create idx_food_name_brand: %w", err)
	}
	return nil
}

// BackfillFoodFolding fills name_folded and brand_folded on rows written
// before those columns existed.
func BackfillFoodFolding(db *gorm.DB) error {
	var batch []*types.FoodRecord
	res := db.Where("name_folded = '' AND name <> ''").FindInBatches(&batch, 200, func(tx *gorm.DB, _ int) error {
		for _, f := range batch {
			f.Fold()
			if err := tx.Model(f).UpdateColumns(map[string]any{
				"name_folded":  f.NameFolded,
				"brand_folded": f.BrandFolded,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if res.Error != nil {
		return fmt.Errorf("backfill food folding: %w", res.Error)
	}
	return nil
}
