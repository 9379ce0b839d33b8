package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/nutrilog-backend/internal/data/repos"
	types "github.com/yungbote/nutrilog-backend/internal/domain"
	"github.com/yungbote/nutrilog-backend/internal/domain/meals"
	"github.com/yungbote/nutrilog-backend/internal/observability"
	"github.com/yungbote/nutrilog-backend/internal/pkg/dbctx"
	apperr "github.com/yungbote/nutrilog-backend/internal/pkg/errors"
	"github.com/yungbote/nutrilog-backend/internal/pkg/logger"
)

// LogFoodInput describes one portion to append to today's meal of the given type.
type LogFoodInput struct {
	Food     types.FoodInput `json:"food"`
	Amount   float64         `json:"amount"`
	MealType string          `json:"meal_type"`
}

type MealLedger interface {
	LogFood(ctx context.Context, userID uuid.UUID, in LogFoodInput) (*types.MealLine, error)
	RemoveLine(ctx context.Context, userID, lineID uuid.UUID) error
	DailyMeals(ctx context.Context, userID uuid.UUID, day time.Time) ([]*types.Meal, error)
}

type mealLedger struct {
	db           *gorm.DB
	log          *logger.Logger
	catalog      CatalogService
	mealRepo     repos.MealRepo
	mealLineRepo repos.MealLineRepo
	metrics      *observability.Metrics
	now          func() time.Time
}

func NewMealLedger(
	db *gorm.DB,
	log *logger.Logger,
	catalog CatalogService,
	mealRepo repos.MealRepo,
	mealLineRepo repos.MealLineRepo,
	metrics *observability.Metrics,
) MealLedger {
	return &mealLedger{
		db:           db,
		log:          log.With("service", "MealLedger"),
		catalog:      catalog,
		mealRepo:     mealRepo,
		mealLineRepo: mealLineRepo,
		metrics:      metrics,
		now:          time.Now,
	}
}

// LogFood resolves the food and today's meal slot and appends a line, all in one transaction.
func (l *mealLedger) LogFood(ctx context.Context, userID uuid.UUID, in LogFoodInput) (*types.MealLine, error) {
	if userID == uuid.Nil {
		return nil, apperr.NewAuth("user required")
	}
	if !(in.Amount > 0) {
		return nil, apperr.NewValidation("amount", "must be > 0")
	}
	mealType, ok := meals.ParseMealType(in.MealType)
	if !ok {
		return nil, apperr.NewValidation("meal_type", "must be one of [BREAKFAST LUNCH DINNER SNACK]")
	}
	day := meals.StartOfDay(l.now())

	var line *types.MealLine
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		food, err := l.catalog.PromoteTx(dbc, in.Food)
		if err != nil {
			return err
		}
		meal, err := l.resolveMeal(dbc, userID, mealType, day)
		if err != nil {
			return err
		}
		line = &types.MealLine{
			MealID: meal.ID,
			FoodID: food.ID,
			Amount: in.Amount,
		}
		if err := l.mealLineRepo.Create(dbc, line); err != nil {
			return fmt.Errorf("create meal line: %w", err)
		}
		line.Food = food
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.metrics.ObserveMealLine(string(mealType))
	l.log.Debug("Meal line logged", "user_id", userID, "meal_type", mealType, "line_id", line.ID)
	return line, nil
}

// resolveMeal finds or creates the live meal for the slot. A concurrent creator
// trips idx_meal_slot; the savepoint absorbs that and the winner's row is re-read.
func (l *mealLedger) resolveMeal(dbc dbctx.Context, userID uuid.UUID, mealType types.MealType, day time.Time) (*types.Meal, error) {
	meal, err := l.mealRepo.FindSlot(dbc, userID, mealType, day)
	if err != nil {
		return nil, fmt.Errorf("find meal: %w", err)
	}
	if meal != nil {
		return meal, nil
	}

	meal = &types.Meal{
		UserID: userID,
		Type:   mealType,
		Name:   strings.ToLower(string(mealType)),
		Date:   day,
	}
	err = dbc.Tx.Transaction(func(sp *gorm.DB) error {
		return l.mealRepo.Create(dbctx.Context{Ctx: dbc.Ctx, Tx: sp}, meal)
	})
	if err == nil {
		return meal, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, fmt.Errorf("create meal: %w", err)
	}
	meal, err = l.mealRepo.FindSlot(dbc, userID, mealType, day)
	if err != nil {
		return nil, fmt.Errorf("find meal after conflict: %w", err)
	}
	if meal == nil {
		return nil, fmt.Errorf("meal slot conflict without visible row")
	}
	return meal, nil
}

func (l *mealLedger) RemoveLine(ctx context.Context, userID, lineID uuid.UUID) error {
	if userID == uuid.Nil {
		return apperr.NewAuth("user required")
	}
	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		line, err := l.mealLineRepo.GetForUser(dbc, lineID, userID)
		if err != nil {
			return fmt.Errorf("load meal line: %w", err)
		}
		if line == nil {
			return apperr.NotFound("meal line")
		}
		if _, err := l.mealLineRepo.Delete(dbc, lineID); err != nil {
			return fmt.Errorf("delete meal line: %w", err)
		}
		return nil
	})
}

// DailyMeals returns the day's meals in breakfast, lunch, dinner, snack order.
func (l *mealLedger) DailyMeals(ctx context.Context, userID uuid.UUID, day time.Time) ([]*types.Meal, error) {
	if userID == uuid.Nil {
		return nil, apperr.NewAuth("user required")
	}
	start, end := dayBounds(day)
	out, err := l.mealRepo.ListForDay(dbctx.Context{Ctx: ctx}, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Type.Rank() < out[j].Type.Rank()
	})
	return out, nil
}

// dayBounds returns the inclusive UTC range covering the calendar day of t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := meals.StartOfDay(t)
	return start, start.Add(24*time.Hour - time.Nanosecond)
}
