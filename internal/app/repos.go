package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/nutrilog-backend/internal/data/repos"
	"github.com/yungbote/nutrilog-backend/internal/pkg/logger"
)

type Repos struct {
	User     repos.UserRepo
	Food     repos.FoodRepo
	Meal     repos.MealRepo
	MealLine repos.MealLineRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:     repos.NewUserRepo(db, log),
		Food:     repos.NewFoodRepo(db, log),
		Meal:     repos.NewMealRepo(db, log),
		MealLine: repos.NewMealLineRepo(db, log),
	}
}
