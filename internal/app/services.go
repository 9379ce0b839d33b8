package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/nutrilog-backend/internal/domain/meals"
	"github.com/yungbote/nutrilog-backend/internal/observability"
	"github.com/yungbote/nutrilog-backend/internal/pkg/logger"
	"github.com/yungbote/nutrilog-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	Catalog   services.CatalogService
	Search    services.SearchService
	Ledger    services.MealLedger
	Nutrition services.NutritionService
}

func wireServices(
	db *gorm.DB,
	log *logger.Logger,
	cfg Config,
	reposet Repos,
	clients Clients,
	metrics *observability.Metrics,
) (Services, error) {
	log.Info("Wiring services...")

	goals := meals.DefaultGoals
	if cfg.GoalsFile != "" {
		g, err := services.LoadGoals(cfg.GoalsFile)
		if err != nil {
			return Services{}, fmt.Errorf("load goals: %w", err)
		}
		goals = g
	}

	catalog := services.NewCatalogService(db, log, reposet.Food)
	return Services{
		Auth:      services.NewAuthService(db, log, reposet.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Catalog:   catalog,
		Search:    services.NewSearchService(log, catalog, clients.OpenFoodFacts, clients.SearchCache, metrics),
		Ledger:    services.NewMealLedger(db, log, catalog, reposet.Meal, reposet.MealLine, metrics),
		Nutrition: services.NewNutritionService(log, reposet.MealLine, goals),
	}, nil
}
