package app

import (
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/nutrilog-backend/internal/clients/openfoodfacts"
	"github.com/yungbote/nutrilog-backend/internal/clients/redis"
	"github.com/yungbote/nutrilog-backend/internal/observability"
	"github.com/yungbote/nutrilog-backend/internal/pkg/envutil"
	"github.com/yungbote/nutrilog-backend/internal/pkg/logger"
)

type Config struct {
	Port           string
	JWTSecretKey   string
	AccessTokenTTL time.Duration

	OpenFoodFacts openfoodfacts.Config
	Redis         redis.Options

	GoalsFile   string
	CORSOrigins []string
	Otel        observability.OtelConfig
}

// LoadDotEnv loads .env when present; a missing file is not an error.
func LoadDotEnv(log *logger.Logger) {
	if err := godotenv.Load(); err != nil && log != nil {
		log.Debug("No .env file loaded", "error", err)
	}
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:           envutil.String("PORT", "8080", log),
		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", "defaultsecret", log),
		AccessTokenTTL: envutil.Seconds("ACCESS_TOKEN_TTL", time.Hour, log),
		OpenFoodFacts: openfoodfacts.Config{
			BaseURL:   envutil.String("OFF_BASE_URL", openfoodfacts.DefaultBaseURL, log),
			PageSize:  envutil.Int("OFF_PAGE_SIZE", openfoodfacts.DefaultPageSize, log),
			Country:   envutil.String("OFF_COUNTRY", openfoodfacts.DefaultCountry, log),
			Timeout:   envutil.Seconds("OFF_TIMEOUT_SECONDS", openfoodfacts.DefaultTimeout, log),
			UserAgent: envutil.String("OFF_USER_AGENT", openfoodfacts.DefaultUserAgent, log),
		},
		Redis: redis.Options{
			Addr:     envutil.String("REDIS_ADDR", "", log),
			Password: envutil.String("REDIS_PASSWORD", "", log),
			DB:       envutil.Int("REDIS_DB", 0, log),
			TTL:      envutil.Seconds("SEARCH_CACHE_TTL_SECONDS", redis.DefaultTTL, log),
		},
		GoalsFile:   envutil.String("GOALS_FILE", "", log),
		CORSOrigins: envutil.List("CORS_ALLOW_ORIGINS", nil),
		Otel:        observability.OtelConfigFromEnv(log),
	}
}
