package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/nutrilog-backend/internal/clients/openfoodfacts"
	"github.com/yungbote/nutrilog-backend/internal/clients/redis"
	types "github.com/yungbote/nutrilog-backend/internal/domain"
	"github.com/yungbote/nutrilog-backend/internal/domain/catalog"
	"github.com/yungbote/nutrilog-backend/internal/normalization"
	"github.com/yungbote/nutrilog-backend/internal/observability"
	apperr "github.com/yungbote/nutrilog-backend/internal/pkg/errors"
	"github.com/yungbote/nutrilog-backend/internal/pkg/logger"
)

// LocalCatalog is the part of the local catalog consulted by search.
type LocalCatalog interface {
	FindByNameOrBrand(ctx context.Context, text string) (*types.FoodRecord, error)
	FindByBarcode(ctx context.Context, code string) (*types.FoodRecord, error)
}

type SearchService interface {
	// Search consults the local catalog only and never fails.
	Search(ctx context.Context, query string) types.SearchResultSet
	// SearchRemote merges locale-scoped and worldwide upstream results.
	SearchRemote(ctx context.Context, query string) (types.SearchResultSet, error)
	// SearchBarcode resolves a barcode locally, then through the upstream catalog.
	SearchBarcode(ctx context.Context, code string) (types.SearchResultSet, error)
}

type searchService struct {
	log      *logger.Logger
	local    LocalCatalog
	external openfoodfacts.Client
	cache    redis.SearchCache
	metrics  *observability.Metrics
}

// NewSearchService accepts a nil cache.
func NewSearchService(
	log *logger.Logger,
	local LocalCatalog,
	external openfoodfacts.Client,
	cache redis.SearchCache,
	metrics *observability.Metrics,
) SearchService {
	return &searchService{
		log:      log.With("service", "SearchService"),
		local:    local,
		external: external,
		cache:    cache,
		metrics:  metrics,
	}
}

func (s *searchService) Search(ctx context.Context, query string) types.SearchResultSet {
	if normalization.Query(query) == "" {
		s.metrics.ObserveSearch("local", "empty_query")
		return catalog.EmptyResult(true)
	}
	food, err := s.local.FindByNameOrBrand(ctx, query)
	if err != nil {
		s.log.Warn("Local catalog search failed", "error", err)
		s.metrics.ObserveSearch("local", "error")
		return catalog.EmptyResult(false)
	}
	if food == nil {
		s.metrics.ObserveSearch("local", "miss")
		return catalog.EmptyResult(false)
	}
	s.metrics.ObserveSearch("local", "hit")
	return types.SearchResultSet{
		FromLocal: true,
		Products:  []types.CanonicalProduct{catalog.FromFoodRecord(food)},
	}
}

func (s *searchService) SearchRemote(ctx context.Context, query string) (types.SearchResultSet, error) {
	query = normalization.Query(query)
	if query == "" {
		return types.SearchResultSet{}, apperr.NewValidation("q", "is required")
	}

	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, query)
		switch {
		case err != nil:
			s.log.Warn("Search cache read failed", "error", err)
			s.metrics.ObserveCache("error")
		case hit:
			s.metrics.ObserveCache("hit")
			s.metrics.ObserveSearch("remote", "cache_hit")
			return *cached, nil
		default:
			s.metrics.ObserveCache("miss")
		}
	}

	var (
		localeCount, worldCount       int
		localeProducts, worldProducts []types.ExternalProduct
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, products, err := s.external.Search(gctx, query, true)
		localeCount, localeProducts = n, products
		return err
	})
	g.Go(func() error {
		n, products, err := s.external.Search(gctx, query, false)
		worldCount, worldProducts = n, products
		return err
	})
	if err := g.Wait(); err != nil {
		s.metrics.ObserveSearch("remote", "error")
		if !errors.Is(err, apperr.ErrUpstream) {
			err = &apperr.UpstreamError{Op: "remote search", Err: err}
		}
		return types.SearchResultSet{}, err
	}

	result := MergeRemote(localeCount, localeProducts, worldCount, worldProducts)
	s.metrics.ObserveSearch("remote", "ok")

	if s.cache != nil {
		if err := s.cache.Set(ctx, query, result); err != nil {
			s.log.Warn("Search cache write failed", "error", err)
		}
	}
	return result, nil
}

// MergeRemote lists locale-scoped products first, then worldwide products whose
// name does not exactly match a locale-scoped one.
func MergeRemote(localeCount int, locale []types.ExternalProduct, worldCount int, world []types.ExternalProduct) types.SearchResultSet {
	seen := make(map[string]struct{}, len(locale))
	products := make([]types.CanonicalProduct, 0, len(locale)+len(world))
	for _, p := range locale {
		seen[p.Name] = struct{}{}
		products = append(products, catalog.FromExternal(p, true))
	}
	for _, p := range world {
		if _, dup := seen[p.Name]; dup {
			continue
		}
		products = append(products, catalog.FromExternal(p, false))
	}
	return types.SearchResultSet{
		FromLocal: false,
		Total:     localeCount + worldCount,
		Products:  products,
	}
}

func (s *searchService) SearchBarcode(ctx context.Context, code string) (types.SearchResultSet, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return types.SearchResultSet{}, apperr.NewValidation("code", "is required")
	}

	food, err := s.local.FindByBarcode(ctx, code)
	if err != nil {
		s.log.Warn("Local barcode lookup failed", "error", err)
	}
	if food != nil {
		s.metrics.ObserveSearch("barcode", "local_hit")
		return types.SearchResultSet{
			FromLocal: true,
			Products:  []types.CanonicalProduct{catalog.FromFoodRecord(food)},
		}, nil
	}

	name, found, err := s.external.LookupBarcode(ctx, code)
	if err != nil {
		s.metrics.ObserveSearch("barcode", "error")
		return types.SearchResultSet{}, err
	}
	if !found || normalization.Query(name) == "" {
		s.metrics.ObserveSearch("barcode", "not_found")
		return types.SearchResultSet{}, apperr.NotFound("product")
	}
	s.metrics.ObserveSearch("barcode", "resolved")
	return s.SearchRemote(ctx, name)
}
