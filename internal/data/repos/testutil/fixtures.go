package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/nutrilog-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:       uuid.New(),
		Email:    email,
		Password: "pw",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedFood(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, brand *string, calories, proteins, carbs, fats float64) *types.FoodRecord {
	tb.Helper()
	f := &types.FoodRecord{
		ID:       uuid.New(),
		Name:     name,
		Brand:    brand,
		Calories: calories,
		Proteins: proteins,
		Carbs:    carbs,
		Fats:     fats,
	}
	if err := tx.WithContext(ctx).Create(f).Error; err != nil {
		tb.Fatalf("seed food: %v", err)
	}
	return f
}

func SeedMeal(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, mealType types.MealType, day time.Time) *types.Meal {
	tb.Helper()
	m := &types.Meal{
		ID:     uuid.New(),
		UserID: userID,
		Type:   mealType,
		Name:   string(mealType),
		Date:   day,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed meal: %v", err)
	}
	return m
}

func SeedMealLine(tb testing.TB, ctx context.Context, tx *gorm.DB, mealID, foodID uuid.UUID, amount float64) *types.MealLine {
	tb.Helper()
	l := &types.MealLine{
		ID:     uuid.New(),
		MealID: mealID,
		FoodID: foodID,
		Amount: amount,
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		tb.Fatalf("seed meal line: %v", err)
	}
	return l
}
