package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/nutrilog-backend/internal/data/repos"
	types "github.com/yungbote/nutrilog-backend/internal/domain"
	"github.com/yungbote/nutrilog-backend/internal/domain/meals"
	"github.com/yungbote/nutrilog-backend/internal/pkg/dbctx"
	"github.com/yungbote/nutrilog-backend/internal/pkg/logger"
)

type NutritionService interface {
	// DailyTotals sums the day's meal lines; retrieval failures yield zeros.
	DailyTotals(ctx context.Context, userID uuid.UUID, day time.Time) types.NutritionTotals
	DailySummary(ctx context.Context, userID uuid.UUID, day time.Time) types.DailySummary
}

type nutritionService struct {
	log          *logger.Logger
	mealLineRepo repos.MealLineRepo
	goals        types.Goals
}

func NewNutritionService(log *logger.Logger, mealLineRepo repos.MealLineRepo, goals types.Goals) NutritionService {
	return &nutritionService{
		log:          log.With("service", "NutritionService"),
		mealLineRepo: mealLineRepo,
		goals:        goals,
	}
}

func (s *nutritionService) DailyTotals(ctx context.Context, userID uuid.UUID, day time.Time) types.NutritionTotals {
	start, end := dayBounds(day)
	rows, err := s.mealLineRepo.ListNutrientsForDay(dbctx.Context{Ctx: ctx}, userID, start, end)
	if err != nil {
		s.log.Error("Daily nutrition lookup failed", "user_id", userID, "error", err)
		return types.NutritionTotals{}
	}
	var sum types.NutritionTotals
	for _, r := range rows {
		sum.Add(types.NutritionTotals{
			Calories: r.Calories,
			Proteins: r.Proteins,
			Carbs:    r.Carbs,
			Fats:     r.Fats,
		}, r.Amount)
	}
	return sum.Rounded()
}

func (s *nutritionService) DailySummary(ctx context.Context, userID uuid.UUID, day time.Time) types.DailySummary {
	return meals.NewDailySummary(day, s.DailyTotals(ctx, userID, day), s.goals)
}

type goalsFile struct {
	Goals *types.Goals `yaml:"goals"`
}

// LoadGoals reads daily goals from a YAML file with a top-level "goals" mapping.
// An empty path yields the defaults; omitted or non-positive nutrients keep theirs.
func LoadGoals(path string) (types.Goals, error) {
	goals := meals.DefaultGoals
	if path == "" {
		return goals, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return goals, fmt.Errorf("read goals file: %w", err)
	}
	var f goalsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return goals, fmt.Errorf("parse goals file: %w", err)
	}
	if f.Goals == nil {
		return goals, nil
	}
	if f.Goals.Calories > 0 {
		goals.Calories = f.Goals.Calories
	}
	if f.Goals.Proteins > 0 {
		goals.Proteins = f.Goals.Proteins
	}
	if f.Goals.Carbs > 0 {
		goals.Carbs = f.Goals.Carbs
	}
	if f.Goals.Fats > 0 {
		goals.Fats = f.Goals.Fats
	}
	return goals, nil
}
