package audit

import (
	"context"
	"fmt"
	"testing"

	"github.com/AnkitSingh-ai/templaterepo/internal/store"
)

func TestTrail_NewestFirst(t *testing.T) {
	trail := NewTrail(store.NewMemoryStore(), "test")
	ctx := context.Background()

	trail.Record(ctx, "alice", ActionCreateTemplate, "t1", nil)
	trail.Record(ctx, "bob", ActionSetActive, "t1", map[string]interface{}{"active": true})

	entries, err := trail.Entries(ctx)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Action != ActionSetActive || entries[0].Principal != "bob" {
		t.Errorf("newest entry should come first, got %+v", entries[0])
	}
	if entries[1].Action != ActionCreateTemplate {
		t.Errorf("oldest entry should come last, got %+v", entries[1])
	}
	if entries[0].Details["active"] != true {
		t.Errorf("details lost: %+v", entries[0].Details)
	}
}

func TestTrail_EmptyWhenAbsent(t *testing.T) {
	trail := NewTrail(store.NewMemoryStore(), "test")
	entries, err := trail.Entries(context.Background())
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty trail, got %d entries", len(entries))
	}
}

func TestTrail_Bounded(t *testing.T) {
	trail := NewTrail(store.NewMemoryStore(), "test")
	ctx := context.Background()

	for i := 0; i < maxEntries+25; i++ {
		trail.Record(ctx, "alice", ActionUpdateTemplate, fmt.Sprintf("t%d", i), nil)
	}

	entries, err := trail.Entries(ctx)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != maxEntries {
		t.Errorf("trail should cap at %d entries, got %d", maxEntries, len(entries))
	}
	if entries[0].Resource != fmt.Sprintf("t%d", maxEntries+24) {
		t.Errorf("newest entry should survive the cap, got %q", entries[0].Resource)
	}
}
