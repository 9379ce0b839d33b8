package domain

import (
	"github.com/yungbote/nutrilog-backend/internal/domain/catalog"
	"github.com/yungbote/nutrilog-backend/internal/domain/meals"
	"github.com/yungbote/nutrilog-backend/internal/domain/user"
)

const (
	MealTypeBreakfast = meals.MealTypeBreakfast
	MealTypeLunch     = meals.MealTypeLunch
	MealTypeDinner    = meals.MealTypeDinner
	MealTypeSnack     = meals.MealTypeSnack
)

type User = user.User

type FoodRecord = catalog.FoodRecord
type FoodInput = catalog.FoodInput
type NutritionPer100g = catalog.NutritionPer100g
type ExternalProduct = catalog.ExternalProduct
type CanonicalProduct = catalog.CanonicalProduct
type SearchResultSet = catalog.SearchResultSet

type MealType = meals.MealType
type Meal = meals.Meal
type MealLine = meals.MealLine
type NutritionTotals = meals.NutritionTotals
type Goals = meals.Goals
type DailySummary = meals.DailySummary

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&user.User{},
		&catalog.FoodRecord{},
		&meals.Meal{},
		&meals.MealLine{},
	}
}
