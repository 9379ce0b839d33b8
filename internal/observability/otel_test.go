package observability

import (
	"context"
	"testing"
)

func TestParseRatio(t *testing.T) {
	cases := map[string]float64{"0.5": 0.5, "2": 1, "-1": 0}
	for raw, want := range cases {
		got, ok := parseRatio(raw)
		if !ok || got != want {
			t.Fatalf("parseRatio(%q): want=%v got=%v ok=%v", raw, want, got, ok)
		}
	}
	if _, ok := parseRatio("abc"); ok {
		t.Fatalf("parseRatio(abc): expected failure")
	}
}

func TestParseHeaders(t *testing.T) {
	got := parseHeaders("a=1, b = 2 ,broken,=x")
	if len(got) != 2 || got["a"] != "1" || got["b"] != "2" {
		t.Fatalf("parseHeaders: unexpected %v", got)
	}
	if parseHeaders("  ") != nil {
		t.Fatalf("parseHeaders: want nil for blank input")
	}
}

func TestStartSpanWithoutProvider(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "noop")
	defer span.End()
	if ctx == nil {
		t.Fatalf("StartSpan: nil context")
	}
}
