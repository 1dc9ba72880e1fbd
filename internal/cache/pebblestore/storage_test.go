package pebblestore

import (
	"context"
	"sort"
	"testing"
)

func TestStorage_RoundTripAndReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok, err := s.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected clean miss, ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "wildink_catalog_cache", []byte(`{"data":[]}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// Данные переживают повторное открытие.
	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, ok, err := s.Get(ctx, "wildink_catalog_cache")
	if err != nil || !ok || string(got) != `{"data":[]}` {
		t.Fatalf("after reopen got=%q ok=%v err=%v", got, ok, err)
	}
}

func TestStorage_KeysAndDelete(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	for _, k := range []string{"b", "a", "c"} {
		if err := s.Set(ctx, k, []byte(k)); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	if err := s.Delete(ctx, "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, "never-existed"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "c" {
		t.Fatalf("Keys: got=%v", keys)
	}
}
