package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/nutrilog-backend/internal/data/repos"
	"github.com/yungbote/nutrilog-backend/internal/data/repos/testutil"
	types "github.com/yungbote/nutrilog-backend/internal/domain"
	"github.com/yungbote/nutrilog-backend/internal/domain/meals"
	"github.com/yungbote/nutrilog-backend/internal/observability"
	"github.com/yungbote/nutrilog-backend/internal/pkg/logger"
)

var testNow = time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)

type testEnv struct {
	db        *gorm.DB
	log       *logger.Logger
	catalog   CatalogService
	ledger    MealLedger
	nutrition NutritionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	metrics := observability.NewMetrics()

	catalog := NewCatalogService(db, log, repos.NewFoodRepo(db, log))
	mealLineRepo := repos.NewMealLineRepo(db, log)
	ledger := NewMealLedger(db, log, catalog, repos.NewMealRepo(db, log), mealLineRepo, metrics)
	ledger.(*mealLedger).now = func() time.Time { return testNow }

	return &testEnv{
		db:        db,
		log:       log,
		catalog:   catalog,
		ledger:    ledger,
		nutrition: NewNutritionService(log, mealLineRepo, meals.DefaultGoals),
	}
}

type fakeLocal struct {
	food      *types.FoodRecord
	err       error
	nameCalls atomic.Int32
	codeCalls atomic.Int32
}

func (f *fakeLocal) FindByNameOrBrand(ctx context.Context, text string) (*types.FoodRecord, error) {
	f.nameCalls.Add(1)
	return f.food, f.err
}

func (f *fakeLocal) FindByBarcode(ctx context.Context, code string) (*types.FoodRecord, error) {
	f.codeCalls.Add(1)
	return f.food, f.err
}

type offPage struct {
	count    int
	products []types.ExternalProduct
	err      error
}

type fakeOFF struct {
	mu          sync.Mutex
	locale      offPage
	world       offPage
	queries     []string
	searchCalls atomic.Int32
	lookupCalls atomic.Int32

	lookupName  string
	lookupFound bool
	lookupErr   error
}

func (f *fakeOFF) Search(ctx context.Context, query string, localeScoped bool) (int, []types.ExternalProduct, error) {
	f.searchCalls.Add(1)
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	page := f.world
	if localeScoped {
		page = f.locale
	}
	if page.err != nil {
		return 0, nil, page.err
	}
	return page.count, page.products, nil
}

func (f *fakeOFF) LookupBarcode(ctx context.Context, code string) (string, bool, error) {
	f.lookupCalls.Add(1)
	return f.lookupName, f.lookupFound, f.lookupErr
}

// barrierOFF holds every Search until the expected number of calls are in
// flight, so a sequential caller times out instead of succeeding.
type barrierOFF struct {
	*fakeOFF
	want    int32
	wait    time.Duration
	started atomic.Int32
	ready   chan struct{}
}

func newBarrierOFF(inner *fakeOFF, want int32) *barrierOFF {
	return &barrierOFF{fakeOFF: inner, want: want, wait: 2 * time.Second, ready: make(chan struct{})}
}

func (b *barrierOFF) Search(ctx context.Context, query string, localeScoped bool) (int, []types.ExternalProduct, error) {
	if b.started.Add(1) == b.want {
		close(b.ready)
	}
	select {
	case <-b.ready:
	case <-ctx.Done():
		return 0, nil, ctx.Err()
	case <-time.After(b.wait):
		return 0, nil, errSiblingNeverStarted
	}
	return b.fakeOFF.Search(ctx, query, localeScoped)
}

var errSiblingNeverStarted = errors.New("sibling sub-query never started")

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]types.SearchResultSet
	getErr  error
	setErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]types.SearchResultSet{}}
}

func (c *fakeCache) Get(ctx context.Context, query string) (*types.SearchResultSet, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[query]
	if !ok {
		return nil, false, nil
	}
	return &v, true, nil
}

func (c *fakeCache) Set(ctx context.Context, query string, result types.SearchResultSet) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[query] = result
	return nil
}

func (c *fakeCache) Close() error { return nil }

func ext(name string, kcal float64) types.ExternalProduct {
	return types.ExternalProduct{Name: name, NutritionPer100g: types.NutritionPer100g{Calories: kcal}}
}

func banana() types.FoodInput {
	return types.FoodInput{Name: "Banana", Calories: 89, Proteins: 1.1, Carbs: 22.8, Fats: 0.3}
}
