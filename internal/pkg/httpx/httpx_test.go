package httpx

import (
	"fmt"
	"testing"
	"time"
)

type statusErr int

func (s statusErr) Error() string       { return fmt.Sprintf("status %d", int(s)) }
func (s statusErr) HTTPStatusCode() int { return int(s) }

func TestStatusOf(t *testing.T) {
	if got := StatusOf(fmt.Errorf("wrap: %w", statusErr(503))); got != 503 {
		t.Fatalf("want=503 got=%d", got)
	}
	if got := StatusOf(fmt.Errorf("plain")); got != 0 {
		t.Fatalf("want=0 got=%d", got)
	}
}

func TestNewClientDefaultsTimeout(t *testing.T) {
	if c := NewClient(0); c.Timeout != 10*time.Second {
		t.Fatalf("want=10s got=%s", c.Timeout)
	}
	if c := NewClient(2 * time.Second); c.Timeout != 2*time.Second {
		t.Fatalf("want=2s got=%s", c.Timeout)
	}
}

func TestIsSuccess(t *testing.T) {
	for _, code := range []int{200, 204, 299} {
		if !IsSuccess(code) {
			t.Fatalf("%d should be success", code)
		}
	}
	for _, code := range []int{199, 301, 404, 500} {
		if IsSuccess(code) {
			t.Fatalf("%d should not be success", code)
		}
	}
}
