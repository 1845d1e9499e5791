package cache

import "testing"

func TestLRUEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](2)

	c.Put("a", 1)
	c.Put("b", 2)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a to be present")
	}

	// a was just touched, so b is now the least recently used entry and
	// must be the one evicted when c forces capacity 2 to hold a third key.
	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("expected b to have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("expected a=1 to survive, got %v, %v", v, ok)
	}
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("expected c=3 to be present, got %v, %v", v, ok)
	}
}

func TestLRUPutUpdatesExistingKeyWithoutEviction(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 10)

	if c.Len() != 2 {
		t.Fatalf("expected len 2, got %d", c.Len())
	}
	if v, ok := c.Get("a"); !ok || v != 10 {
		t.Errorf("expected a=10, got %v, %v", v, ok)
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Errorf("expected b=2 to survive, got %v, %v", v, ok)
	}
}

func TestLRUErase(t *testing.T) {
	c := New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Erase("a")

	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be erased")
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Errorf("expected b=2 to be untouched, got %v, %v", v, ok)
	}

	// Erasing an absent key must not disturb anything else.
	c.Erase("nonexistent")
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Errorf("erase of absent key disturbed b: got %v, %v", v, ok)
	}
}

func TestLRUClear(t *testing.T) {
	c := New[string, int](4)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got len %d", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to be gone after Clear")
	}

	// The cache must still be usable after Clear.
	c.Put("c", 3)
	if v, ok := c.Get("c"); !ok || v != 3 {
		t.Errorf("expected c=3 after reuse, got %v, %v", v, ok)
	}
}

func TestLRUCapacityClampedToOne(t *testing.T) {
	c := New[string, int](0)
	c.Put("a", 1)
	c.Put("b", 2)

	if c.Len() != 1 {
		t.Fatalf("expected clamped capacity 1, got len %d", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("expected a to have been evicted in favor of b")
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Errorf("expected b=2, got %v, %v", v, ok)
	}
}

func TestLRUMetricsNilSafe(t *testing.T) {
	c := New[string, int](1)
	// No WithMetrics call — metrics is nil. None of these must panic.
	c.Put("a", 1)
	c.Get("a")
	c.Get("missing")
	c.Put("b", 2)
	c.Clear()
}
