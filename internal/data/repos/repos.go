package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/nutrilog-backend/internal/data/repos/catalog"
	"github.com/yungbote/nutrilog-backend/internal/data/repos/meals"
	"github.com/yungbote/nutrilog-backend/internal/data/repos/user"
	"github.com/yungbote/nutrilog-backend/internal/pkg/logger"
)

type UserRepo = user.UserRepo

type FoodRepo = catalog.FoodRepo

type MealRepo = meals.MealRepo
type MealLineRepo = meals.MealLineRepo
type LineNutrients = meals.LineNutrients

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewFoodRepo(db *gorm.DB, baseLog *logger.Logger) FoodRepo { return catalog.NewFoodRepo(db, baseLog) }

func NewMealRepo(db *gorm.DB, baseLog *logger.Logger) MealRepo { return meals.NewMealRepo(db, baseLog) }
func NewMealLineRepo(db *gorm.DB, baseLog *logger.Logger) MealLineRepo {
	return meals.NewMealLineRepo(db, baseLog)
}
