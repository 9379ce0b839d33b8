package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	types "github.com/yungbote/nutrilog-backend/internal/domain"
	"github.com/yungbote/nutrilog-backend/internal/pkg/logger"
)

const (
	DefaultTTL = 10 * time.Minute
	keyPrefix  = "nutrilog:search:remote:"
)

// SearchCache stores merged remote search results keyed by the exact query.
type SearchCache interface {
	Get(ctx context.Context, query string) (*types.SearchResultSet, bool, error)
	Set(ctx context.Context, query string, result types.SearchResultSet) error
	Close() error
}

type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type searchCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewSearchCache(log *logger.Logger, opts Options) (SearchCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if opts.Addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newSearchCache(log, rdb, opts.TTL), nil
}

func newSearchCache(log *logger.Logger, rdb *goredis.Client, ttl time.Duration) *searchCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &searchCache{
		log: log.With("service", "RedisSearchCache"),
		rdb: rdb,
		ttl: ttl,
	}
}

// Key hashes the query so arbitrary user text never lands in a key verbatim.
func Key(query string) string {
	sum := sha256.Sum256([]byte(query))
	return keyPrefix + hex.EncodeToString(sum[:])
}

func (c *searchCache) Get(ctx context.Context, query string) (*types.SearchResultSet, bool, error) {
	raw, err := c.rdb.Get(ctx, Key(query)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var out types.SearchResultSet
	if err := json.Unmarshal(raw, &out); err != nil {
		c.log.Warn("dropping undecodable search cache entry", "error", err)
		_ = c.rdb.Del(ctx, Key(query)).Err()
		return nil, false, nil
	}
	return &out, true, nil
}

func (c *searchCache) Set(ctx context.Context, query string, result types.SearchResultSet) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, Key(query), raw, c.ttl).Err()
}

func (c *searchCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
