package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/nutrilog-backend/internal/http/handlers"
	httpMW "github.com/yungbote/nutrilog-backend/internal/http/middleware"
	"github.com/yungbote/nutrilog-backend/internal/observability"
	"github.com/yungbote/nutrilog-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware

	FoodHandler      *httpH.FoodHandler
	MealHandler      *httpH.MealHandler
	NutritionHandler *httpH.NutritionHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Foods
		if cfg.FoodHandler != nil {
			protected.GET("/foods/search", cfg.FoodHandler.Search)
			protected.GET("/foods/search/remote", cfg.FoodHandler.SearchRemote)
			protected.GET("/foods/barcode/:code", cfg.FoodHandler.SearchBarcode)
			protected.GET("/foods", cfg.FoodHandler.List)
			protected.POST("/foods", cfg.FoodHandler.Create)
			protected.POST("/foods/promote", cfg.FoodHandler.Promote)
			protected.PUT("/foods/:id", cfg.FoodHandler.Update)
			protected.DELETE("/foods/:id", cfg.FoodHandler.Delete)
		}

		// Meals
		if cfg.MealHandler != nil {
			protected.POST("/meals/log", cfg.MealHandler.Log)
			protected.GET("/meals", cfg.MealHandler.List)
			protected.DELETE("/meals/lines/:id", cfg.MealHandler.DeleteLine)
		}

		// Nutrition
		if cfg.NutritionHandler != nil {
			protected.GET("/nutrition/daily", cfg.NutritionHandler.Daily)
		}
	}

	return r
}
