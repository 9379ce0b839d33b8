package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/nutrilog-backend/internal/http"
	httpH "github.com/yungbote/nutrilog-backend/internal/http/handlers"
	httpMW "github.com/yungbote/nutrilog-backend/internal/http/middleware"
	"github.com/yungbote/nutrilog-backend/internal/observability"
	"github.com/yungbote/nutrilog-backend/internal/pkg/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Auth      *httpH.AuthHandler
	Food      *httpH.FoodHandler
	Meal      *httpH.MealHandler
	Nutrition *httpH.NutritionHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(db),
		Auth:      httpH.NewAuthHandler(services.Auth),
		Food:      httpH.NewFoodHandler(log, services.Search, services.Catalog),
		Meal:      httpH.NewMealHandler(services.Ledger),
		Nutrition: httpH.NewNutritionHandler(services.Nutrition),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *http.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewServer(http.RouterConfig{
		Log:              log,
		Metrics:          metrics,
		ServiceName:      serviceName,
		CORSOrigins:      cfg.CORSOrigins,
		HealthHandler:    handlers.Health,
		AuthHandler:      handlers.Auth,
		AuthMiddleware:   middleware.Auth,
		FoodHandler:      handlers.Food,
		MealHandler:      handlers.Meal,
		NutritionHandler: handlers.Nutrition,
	})
}
