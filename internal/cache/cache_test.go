package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory[string](4, time.Minute)
	m.Set("k1", "v1")

	got, ok := m.Get("k1")
	if !ok || got != "v1" {
		t.Fatalf("Get = %q, %v; want v1, true", got, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get returned true for missing key")
	}
}

func TestMemory_Expiration(t *testing.T) {
	m := NewMemory[int](4, 10*time.Millisecond)
	m.Set("k", 1)
	time.Sleep(20 * time.Millisecond)
	if _, ok := m.Get("k"); ok {
		t.Error("expired entry still retrievable")
	}
}

func TestMemory_LRUEviction(t *testing.T) {
	m := NewMemory[int](2, time.Minute)
	m.Set("a", 1)
	m.Set("b", 2)
	m.Get("a") // refresh a; b becomes LRU
	m.Set("c", 3)

	if _, ok := m.Get("b"); ok {
		t.Error("LRU entry b was not evicted")
	}
	if _, ok := m.Get("a"); !ok {
		t.Error("recently used entry a was evicted")
	}
	if m.Len() != 2 {
		t.Errorf("Len = %d, want 2", m.Len())
	}
}

func TestMemory_OverwriteRefreshes(t *testing.T) {
	m := NewMemory[string](2, time.Minute)
	m.Set("k", "old")
	m.Set("k", "new")
	if got, _ := m.Get("k"); got != "new" {
		t.Errorf("Get = %q, want new", got)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}

func TestMemory_Clear(t *testing.T) {
	m := NewMemory[int](8, time.Minute)
	for i := 0; i < 5; i++ {
		m.Set(fmt.Sprintf("k%d", i), i)
	}
	m.Clear()
	if m.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", m.Len())
	}
}
