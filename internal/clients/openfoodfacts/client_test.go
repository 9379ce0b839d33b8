package openfoodfacts

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/nutrilog-backend/internal/observability"
	apperr "github.com/yungbote/nutrilog-backend/internal/pkg/errors"
	"github.com/yungbote/nutrilog-backend/internal/pkg/httpx"
	"github.com/yungbote/nutrilog-backend/internal/pkg/logger"
)

func newTestClient(t *testing.T, srv *httptest.Server, cfg Config) Client {
	t.Helper()
	log, err := logger.New("test")
	require.NoError(t, err)
	cfg.BaseURL = srv.URL
	c, err := NewClient(log, cfg, observability.NewMetrics())
	require.NoError(t, err)
	return c
}

func queryKeys(rawQuery string) []string {
	var keys []string
	for _, part := range strings.Split(rawQuery, "&") {
		keys = append(keys, strings.SplitN(part, "=", 2)[0])
	}
	return keys
}

const searchBody = `{
  "count": 2,
  "products": [
    {"product_name": "Banán", "brands": "Chiquita", "image_url": "https://img/x.jpg",
     "nutriments": {"energy-kcal_100g": 89, "proteins_100g": "1.1", "carbohydrates_100g": 22.8},
     "countries_tags": ["en:czech-republic"], "nutrition_grades": "a", "quantity": "1 kg"},
    {"product_name": "Banana chips", "nutriments": {}}
  ]
}`

func TestSearchLocaleScopedParams(t *testing.T) {
	var gotPath, gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Config{UserAgent: "nutrilog-test"})
	count, products, err := c.Search(context.Background(), "banán", true)
	require.NoError(t, err)

	assert.Equal(t, "/cgi/search.pl", gotPath)
	assert.Equal(t, "nutrilog-test", gotUA)
	assert.Equal(t, []string{
		"search_terms", "search_simple", "action", "json", "page_size", "fields",
		"tagtype_0", "tag_contains_0", "tag_0", "sort_by",
	}, queryKeys(gotQuery))

	req, _ := http.NewRequest(http.MethodGet, "/?"+gotQuery, nil)
	q := req.URL.Query()
	assert.Equal(t, "banán", q.Get("search_terms"))
	assert.Equal(t, "5", q.Get("page_size"))
	assert.Equal(t, searchFields, q.Get("fields"))
	assert.Equal(t, "czech-republic", q.Get("tag_0"))
	assert.Equal(t, "popularity_key", q.Get("sort_by"))

	assert.Equal(t, 2, count)
	require.Len(t, products, 2)
	assert.Equal(t, "Banán", products[0].Name)
	assert.Equal(t, "Chiquita", products[0].Brand)
	assert.Equal(t, 89.0, products[0].NutritionPer100g.Calories)
	assert.Equal(t, 1.1, products[0].NutritionPer100g.Proteins)
	assert.Zero(t, products[0].NutritionPer100g.Fats)
	assert.Zero(t, products[1].NutritionPer100g.Calories)
}

func TestSearchWorldwideOmitsLocaleParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"count": "0", "products": []}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Config{PageSize: 10, Country: "slovakia"})
	count, products, err := c.Search(context.Background(), "quinoa", false)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, products)
	assert.Equal(t, []string{"search_terms", "search_simple", "action", "json", "page_size", "fields"}, queryKeys(gotQuery))
	assert.Contains(t, gotQuery, "page_size=10")
}

func TestSearchUpstreamFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		},
		"body": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>"))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			c := newTestClient(t, srv, Config{})
			_, _, err := c.Search(context.Background(), "x", false)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrUpstream))
		})
	}
}

func TestSearchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Config{Timeout: 50 * time.Millisecond})
	_, _, err := c.Search(context.Background(), "slow", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrUpstream))
	assert.Equal(t, 0, httpx.StatusOf(err))
}

func TestLookupBarcode(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/api/v2/product/8594001021499.json":
			_, _ = w.Write([]byte(`{"status": 1, "product": {"product_name": "Kofola"}}`))
		case "/api/v2/product/0000.json":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"status": 0, "status_verbose": "product not found"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()
	c := newTestClient(t, srv, Config{})

	name, found, err := c.LookupBarcode(context.Background(), "8594001021499")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Kofola", name)

	_, found, err = c.LookupBarcode(context.Background(), "0000")
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = c.LookupBarcode(context.Background(), "1111")
	assert.True(t, errors.Is(err, apperr.ErrUpstream))
	assert.Equal(t, http.StatusInternalServerError, httpx.StatusOf(err))

	before := hits.Load()
	_, _, err = c.LookupBarcode(context.Background(), "12ab")
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
	assert.Equal(t, before, hits.Load())
}
