package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics()
	m.ObserveAPI("GET", "/api/foods", 200, 10*time.Millisecond)
	m.ObserveAPI("GET", "/api/foods", 200, 20*time.Millisecond)
	m.ObserveUpstream("search", 0, time.Second)
	m.ObserveCache("hit")

	if got := testutil.ToFloat64(m.apiRequests.WithLabelValues("GET", "/api/foods", "200")); got != 2 {
		t.Fatalf("api requests: want=2 got=%v", got)
	}
	if got := testutil.ToFloat64(m.upstreamCalls.WithLabelValues("search", "error")); got != 1 {
		t.Fatalf("upstream errors: want=1 got=%v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "nutrilog_search_cache_lookups_total") {
		t.Fatalf("exposition missing cache counter:\n%s", body)
	}
}

func TestNilMetricsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", 200, time.Millisecond)
	m.ObserveUpstream("barcode", 404, time.Millisecond)
	m.ObserveSearch("local", "hit")
	m.ObserveCache("miss")
	m.ObserveMealLine("LUNCH")
}

func TestTwoInstancesDoNotCollide(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()
	a.ObserveMealLine("LUNCH")
	if got := testutil.ToFloat64(b.mealLines.WithLabelValues("LUNCH")); got != 0 {
		t.Fatalf("registries shared state: got=%v", got)
	}
}
