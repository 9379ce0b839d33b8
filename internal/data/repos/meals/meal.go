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

type MealRepo interface {
	Create(dbc dbctx.Context, meal *types.Meal) error
	FindSlot(dbc dbctx.Context, userID uuid.UUID, mealType types.MealType, day time.Time) (*types.Meal, error)
	ListForDay(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) ([]*types.Meal, error)
}

type mealRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMealRepo(db *gorm.DB, baseLog *logger.Logger) MealRepo {
	return &mealRepo{
		db:  db,
		log: baseLog.With("repo", "MealRepo"),
	}
}

func (r *mealRepo) Create(dbc dbctx.Context, meal *types.Meal) error {
	return dbc.Conn(r.db).Create(meal).Error
}

// FindSlot returns the live meal for (user, type, day) or nil.
func (r *mealRepo) FindSlot(dbc dbctx.Context, userID uuid.UUID, mealType types.MealType, day time.Time) (*types.Meal, error) {
	var meal types.Meal
	err := dbc.Conn(r.db).
		Where(`user_id = ? AND type = ? AND "date" = ?`, userID, mealType, day).
		First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

// ListForDay loads meals dated in [start, end] with their lines and foods.
func (r *mealRepo) ListForDay(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) ([]*types.Meal, error) {
	var out []*types.Meal
	if err := dbc.Conn(r.db).
		Where(`user_id = ? AND "date" >= ? AND "date" <= ?`, userID, start, end).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Lines.Food").
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
