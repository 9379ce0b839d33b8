package meals

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/nutrilog-backend/internal/domain"
	"github.com/yungbote/nutrilog-backend/internal/pkg/dbctx"
	"github.com/yungbote/nutrilog-backend/internal/pkg/logger"
)

// LineNutrients is one meal line joined with its food's per-100 g values.
type LineNutrients struct {
	Amount   float64
	Calories float64
	Proteins float64
	Carbs    float64
	Fats     float64
}

type MealLineRepo interface {
	Create(dbc dbctx.Context, line *types.MealLine) error
	GetForUser(dbc dbctx.Context, lineID, userID uuid.UUID) (*types.MealLine, error)
	Delete(dbc dbctx.Context, lineID uuid.UUID) (bool, error)
	ListNutrientsForDay(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) ([]LineNutrients, error)
}

type mealLineRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMealLineRepo(db *gorm.DB, baseLog *logger.Logger) MealLineRepo {
	return &mealLineRepo{
		db:  db,
		log: baseLog.With("repo", "MealLineRepo"),
	}
}

func (r *mealLineRepo) Create(dbc dbctx.Context, line *types.MealLine) error {
	return dbc.Conn(r.db).Create(line).Error
}

// GetForUser returns the line only when it belongs to one of the user's live meals.
func (r *mealLineRepo) GetForUser(dbc dbctx.Context, lineID, userID uuid.UUID) (*types.MealLine, error) {
	var line types.MealLine
	err := dbc.Conn(r.db).
		Joins("JOIN meal ON meal.id = meal_line.meal_id AND meal.deleted_at IS NULL").
		Where("meal_line.id = ? AND meal.user_id = ?", lineID, userID).
		First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *mealLineRepo) Delete(dbc dbctx.Context, lineID uuid.UUID) (bool, error) {
	res := dbc.Conn(r.db).Where("id = ?", lineID).Delete(&types.MealLine{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *mealLineRepo) ListNutrientsForDay(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) ([]LineNutrients, error) {
	var out []LineNutrients
	if err := dbc.Conn(r.db).
		Table("meal_line").
		Select("meal_line.amount AS amount, food.calories AS calories, food.proteins AS proteins, food.carbs AS carbs, food.fats AS fats").
		Joins("JOIN meal ON meal.id = meal_line.meal_id AND meal.deleted_at IS NULL").
		Joins("JOIN food ON food.id = meal_line.food_id").
		Where(`meal.user_id = ? AND meal."date" >= ? AND meal."date" <= ?`, userID, start, end).
		Order("meal_line.created_at ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
