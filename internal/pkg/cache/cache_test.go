package cache

import (
	"errors"
	"testing"
	"time"
)

func TestGetOrRefreshCachesWithinTTL(t *testing.T) {
	c := New()
	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	v, err := c.GetOrRefresh("plan", time.Minute, fetch)
	if err != nil {
		t.Fatalf("GetOrRefresh error: %v", err)
	}
	if v.(int) != 1 {
		t.Fatalf("expected first fetch value 1, got %v", v)
	}

	v, err = c.GetOrRefresh("plan", time.Minute, fetch)
	if err != nil {
		t.Fatalf("GetOrRefresh error: %v", err)
	}
	if v.(int) != 1 || calls != 1 {
		t.Fatalf("expected cached value, got %v after %d calls", v, calls)
	}
}

func TestGetOrRefreshExpires(t *testing.T) {
	c := New()
	current := time.Now()
	c.now = func() time.Time { return current }

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	if _, err := c.GetOrRefresh("plan", time.Minute, fetch); err != nil {
		t.Fatalf("GetOrRefresh error: %v", err)
	}
	current = current.Add(2 * time.Minute)
	v, err := c.GetOrRefresh("plan", time.Minute, fetch)
	if err != nil {
		t.Fatalf("GetOrRefresh error: %v", err)
	}
	if v.(int) != 2 {
		t.Fatalf("expected refetch after expiry, got %v", v)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	c := New()
	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return calls, nil
	}

	c.GetOrRefresh("reference", time.Hour, fetch)
	c.Invalidate("reference")
	v, _ := c.GetOrRefresh("reference", time.Hour, fetch)
	if v.(int) != 2 {
		t.Fatalf("expected refetch after invalidate, got %v", v)
	}
}

func TestFetchErrorNotCached(t *testing.T) {
	c := New()
	boom := errors.New("boom")
	_, err := c.GetOrRefresh("plan", time.Minute, func() (interface{}, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}

	v, err := c.GetOrRefresh("plan", time.Minute, func() (interface{}, error) {
		return "ok", nil
	})
	if err != nil || v.(string) != "ok" {
		t.Fatalf("expected fresh fetch after error, got %v, %v", v, err)
	}
}
