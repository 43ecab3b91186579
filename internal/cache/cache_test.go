package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		m := NewMemory()
		_, ok, err := m.Get(ctx, "absent")
		if err != nil || ok {
			t.Errorf("expected clean miss, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("set_get_delete", func(t *testing.T) {
		m := NewMemory()
		if err := m.Set(ctx, "summary:u1", []byte(`{"balance":"1"}`), time.Minute); err != nil {
			t.Fatalf("set: %v", err)
		}
		val, ok, _ := m.Get(ctx, "summary:u1")
		if !ok || string(val) != `{"balance":"1"}` {
			t.Fatalf("unexpected value %q ok=%v", val, ok)
		}
		_ = m.Delete(ctx, "summary:u1")
		if _, ok, _ := m.Get(ctx, "summary:u1"); ok {
			t.Error("expected key to be deleted")
		}
	})

	t.Run("expiry", func(t *testing.T) {
		m := NewMemory()
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		m.now = func() time.Time { return now }

		_ = m.Set(ctx, "k", []byte("v"), time.Second)
		now = now.Add(2 * time.Second)
		if _, ok, _ := m.Get(ctx, "k"); ok {
			t.Error("expected expired key to miss")
		}
		if m.Len() != 0 {
			t.Errorf("expected expired key to be evicted, len=%d", m.Len())
		}
	})

	t.Run("stored_value_is_copied", func(t *testing.T) {
		m := NewMemory()
		buf := []byte("abc")
		_ = m.Set(ctx, "k", buf, 0)
		buf[0] = 'z'
		val, _, _ := m.Get(ctx, "k")
		if string(val) != "abc" {
			t.Errorf("expected stored copy, got %q", val)
		}
	})
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()
	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("noop cache should never hit")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
