package app

import (
	"fmt"

	"github.com/yungbote/nutrilog-backend/internal/clients/openfoodfacts"
	"github.com/yungbote/nutrilog-backend/internal/clients/redis"
	"github.com/yungbote/nutrilog-backend/internal/observability"
	"github.com/yungbote/nutrilog-backend/internal/pkg/logger"
)

type Clients struct {
	OpenFoodFacts openfoodfacts.Client
	SearchCache   redis.SearchCache
}

func wireClients(log *logger.Logger, cfg Config, metrics *observability.Metrics) (Clients, error) {
	log.Info("Wiring clients...")

	off, err := openfoodfacts.NewClient(log, cfg.OpenFoodFacts, metrics)
	if err != nil {
		return Clients{}, fmt.Errorf("init open food facts client: %w", err)
	}

	// Redis is optional; without it remote searches are not cached.
	var cache redis.SearchCache
	if cfg.Redis.Addr != "" {
		c, err := redis.NewSearchCache(log, cfg.Redis)
		if err != nil {
			log.Warn("Search cache unavailable (continuing without cache)", "error", err)
		} else {
			cache = c
		}
	}

	return Clients{OpenFoodFacts: off, SearchCache: cache}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.SearchCache != nil {
		_ = c.SearchCache.Close()
	}
}
