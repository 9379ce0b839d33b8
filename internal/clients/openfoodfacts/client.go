package openfoodfacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	types "github.com/yungbote/nutrilog-backend/internal/domain"
	"github.com/yungbote/nutrilog-backend/internal/normalization"
	"github.com/yungbote/nutrilog-backend/internal/observability"
	"github.com/yungbote/nutrilog-backend/internal/pkg/ctxutil"
	apperr "github.com/yungbote/nutrilog-backend/internal/pkg/errors"
	"github.com/yungbote/nutrilog-backend/internal/pkg/httpx"
	"github.com/yungbote/nutrilog-backend/internal/pkg/logger"
)

const (
	DefaultBaseURL   = "https://world.openfoodfacts.org"
	DefaultPageSize  = 5
	DefaultCountry   = "czech-republic"
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "nutrilog-backend/1.0"

	searchFields = "product_name,image_url,nutriments,nutrition_grades,brands,quantity,countries_tags"

	endpointSearch  = "search"
	endpointBarcode = "barcode"
)

// Client queries the Open Food Facts catalog.
type Client interface {
	// Search returns the upstream hit count and the normalized products of the first page.
	// localeScoped restricts the query to the configured country, sorted by popularity.
	Search(ctx context.Context, query string, localeScoped bool) (int, []types.ExternalProduct, error)
	// LookupBarcode resolves a barcode to a product name.
	LookupBarcode(ctx context.Context, code string) (string, bool, error)
}

type Config struct {
	BaseURL   string
	PageSize  int
	Country   string
	Timeout   time.Duration
	UserAgent string
}

func (c Config) withDefaults() Config {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if strings.TrimSpace(c.Country) == "" {
		c.Country = DefaultCountry
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		c.UserAgent = DefaultUserAgent
	}
	return c
}

type client struct {
	log        *logger.Logger
	cfg        Config
	metrics    *observability.Metrics
	httpClient *http.Client
}

func NewClient(log *logger.Logger, cfg Config, metrics *observability.Metrics) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	cfg = cfg.withDefaults()
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid open food facts base url: %w", err)
	}
	return &client{
		log:        log.With("client", "OpenFoodFactsClient"),
		cfg:        cfg,
		metrics:    metrics,
		httpClient: httpx.NewClient(cfg.Timeout),
	}, nil
}

type searchResponse struct {
	Count    json.Number `json:"count"`
	Products []product   `json:"products"`
}

type product struct {
	ProductName     string         `json:"product_name"`
	ImageURL        string         `json:"image_url"`
	Nutriments      map[string]any `json:"nutriments"`
	NutritionGrades string         `json:"nutrition_grades"`
	Brands          string         `json:"brands"`
	Quantity        string         `json:"quantity"`
	CountriesTags   []string       `json:"countries_tags"`
}

type barcodeResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName string `json:"product_name"`
	} `json:"product"`
}

// searchQuery keeps parameter order stable; url.Values would sort the keys.
func (c *client) searchQuery(query string, localeScoped bool) string {
	params := [][2]string{
		{"search_terms", query},
		{"search_simple", "1"},
		{"action", "process"},
		{"json", "1"},
		{"page_size", fmt.Sprintf("%d", c.cfg.PageSize)},
		{"fields", searchFields},
	}
	if localeScoped {
		params = append(params,
			[2]string{"tagtype_0", "countries"},
			[2]string{"tag_contains_0", "contains"},
			[2]string{"tag_0", c.cfg.Country},
			[2]string{"sort_by", "popularity_key"},
		)
	}
	var b strings.Builder
	for i, kv := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv[0]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv[1]))
	}
	return b.String()
}

func (c *client) Search(ctx context.Context, query string, localeScoped bool) (int, []types.ExternalProduct, error) {
	ctx, span := observability.StartSpan(ctxutil.Default(ctx), "openfoodfacts.search",
		attribute.Bool("off.locale_scoped", localeScoped),
	)
	defer span.End()

	target := c.cfg.BaseURL + "/cgi/search.pl?" + c.searchQuery(query, localeScoped)
	status, raw, err := c.get(ctx, endpointSearch, target)
	if err == nil && !httpx.IsSuccess(status) {
		err = fmt.Errorf("%s", truncate(raw, 256))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return 0, nil, &apperr.UpstreamError{Op: "openfoodfacts search", Status: status, Err: err}
	}

	var resp searchResponse
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&resp); err != nil {
		span.RecordError(err)
		return 0, nil, &apperr.UpstreamError{Op: "openfoodfacts search", Status: status, Err: fmt.Errorf("decode: %w", err)}
	}

	count := 0
	if resp.Count != "" {
		n, err := resp.Count.Int64()
		if err != nil {
			return 0, nil, &apperr.UpstreamError{Op: "openfoodfacts search", Status: status, Err: fmt.Errorf("decode count: %w", err)}
		}
		count = int(n)
	}

	products := make([]types.ExternalProduct, 0, len(resp.Products))
	for _, p := range resp.Products {
		products = append(products, toExternal(p))
	}
	span.SetAttributes(attribute.Int("off.count", count), attribute.Int("off.products", len(products)))
	c.log.Debug("open food facts search", "locale_scoped", localeScoped, "count", count, "products", len(products))
	return count, products, nil
}

func (c *client) LookupBarcode(ctx context.Context, code string) (string, bool, error) {
	code = strings.TrimSpace(code)
	if !isDigits(code) {
		return "", false, apperr.NewValidation("code", "must contain digits only")
	}
	ctx, span := observability.StartSpan(ctxutil.Default(ctx), "openfoodfacts.barcode",
		attribute.String("off.barcode", code),
	)
	defer span.End()

	target := c.cfg.BaseURL + "/api/v2/product/" + url.PathEscape(code) + ".json"
	status, raw, err := c.get(ctx, endpointBarcode, target)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "barcode lookup failed")
		return "", false, &apperr.UpstreamError{Op: "openfoodfacts barcode", Status: status, Err: err}
	}

	var resp barcodeResponse
	decErr := json.Unmarshal(raw, &resp)
	switch {
	case httpx.IsSuccess(status) && decErr == nil:
	case status == http.StatusNotFound && decErr == nil:
		// Unknown products come back as 404 with status 0.
	case decErr != nil && httpx.IsSuccess(status):
		return "", false, &apperr.UpstreamError{Op: "openfoodfacts barcode", Status: status, Err: fmt.Errorf("decode: %w", decErr)}
	default:
		return "", false, &apperr.UpstreamError{Op: "openfoodfacts barcode", Status: status, Err: fmt.Errorf("%s", truncate(raw, 256))}
	}

	if resp.Status != 1 {
		return "", false, nil
	}
	return resp.Product.ProductName, true, nil
}

func (c *client) get(ctx context.Context, endpoint, target string) (int, []byte, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if rid := ctxutil.RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-Id", rid)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(endpoint, 0, time.Since(start))
		c.log.Warn("open food facts request failed", "endpoint", endpoint, "error", err)
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	c.metrics.ObserveUpstream(endpoint, resp.StatusCode, time.Since(start))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read body: %w", err)
	}
	if !httpx.IsSuccess(resp.StatusCode) {
		c.log.Warn("open food facts non-success status", "endpoint", endpoint, "status", resp.StatusCode)
	}
	return resp.StatusCode, raw, nil
}

func toExternal(p product) types.ExternalProduct {
	return types.ExternalProduct{
		Name:             p.ProductName,
		ImageURL:         p.ImageURL,
		NutritionPer100g: normalization.Nutrients(p.Nutriments),
		Brand:            p.Brands,
		CountryTags:      p.CountriesTags,
		NutritionGrade:   p.NutritionGrades,
		Quantity:         p.Quantity,
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func truncate(raw []byte, n int) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
