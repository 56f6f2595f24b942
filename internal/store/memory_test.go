package store

import (
	"context"
	"testing"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, found, err := s.Get(ctx, "missing"); err != nil || found {
		t.Fatalf("expected absent key, got found=%v err=%v", found, err)
	}

	if err := s.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, found, err := s.Get(ctx, "k")
	if err != nil || !found || v != "v" {
		t.Fatalf("get after set: v=%q found=%v err=%v", v, found, err)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Error("key should be gone after delete")
	}
}

func TestMemoryStore_DeleteAbsentKey(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Delete(context.Background(), "never-set"); err != nil {
		t.Errorf("deleting an absent key should not error, got %v", err)
	}
}
