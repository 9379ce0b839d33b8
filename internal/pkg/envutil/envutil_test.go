package envutil

import (
	"testing"
	"time"
)

func TestIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("NUTRILOG_TEST_INT", "abc")
	if got := Int("NUTRILOG_TEST_INT", 7, nil); got != 7 {
		t.Fatalf("want=7 got=%d", got)
	}
	t.Setenv("NUTRILOG_TEST_INT", " 42 ")
	if got := Int("NUTRILOG_TEST_INT", 7, nil); got != 42 {
		t.Fatalf("want=42 got=%d", got)
	}
}

func TestSeconds(t *testing.T) {
	t.Setenv("NUTRILOG_TEST_SECS", "0")
	if got := Seconds("NUTRILOG_TEST_SECS", 10*time.Second, nil); got != 10*time.Second {
		t.Fatalf("want=10s got=%s", got)
	}
	t.Setenv("NUTRILOG_TEST_SECS", "3")
	if got := Seconds("NUTRILOG_TEST_SECS", 10*time.Second, nil); got != 3*time.Second {
		t.Fatalf("want=3s got=%s", got)
	}
}

func TestListAndString(t *testing.T) {
	t.Setenv("NUTRILOG_TEST_LIST", "a, ,b,")
	got := List("NUTRILOG_TEST_LIST", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected list: %v", got)
	}
	t.Setenv("NUTRILOG_TEST_STR", "   ")
	if s := String("NUTRILOG_TEST_STR", "def", nil); s != "def" {
		t.Fatalf("want=def got=%q", s)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("NUTRILOG_TEST_BOOL", "on")
	if !Bool("NUTRILOG_TEST_BOOL", false) {
		t.Fatalf("expected true")
	}
	t.Setenv("NUTRILOG_TEST_BOOL", "maybe")
	if Bool("NUTRILOG_TEST_BOOL", false) {
		t.Fatalf("expected default false")
	}
}
