package repository

import (
	"context"
	"testing"
	"time"

	"github.com/AnkitSingh-ai/templaterepo/internal/models"
	"github.com/AnkitSingh-ai/templaterepo/internal/store"
)

func testRepo(t *testing.T) *TemplateRepository {
	t.Helper()
	return NewTemplateRepository(store.NewMemoryStore(), "test")
}

func newTemplate(id, name string) *models.Template {
	now := time.Now().UTC()
	return &models.Template{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestIndex_EmptyWhenAbsent(t *testing.T) {
	repo := testRepo(t)
	ids, err := repo.Index(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("expected empty index, got %v", ids)
	}
}

func TestInsert_PrependsToIndex(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	repo.Insert(ctx, newTemplate("a", "first"))
	repo.Insert(ctx, newTemplate("b", "second"))
	repo.Insert(ctx, newTemplate("c", "third"))

	ids, err := repo.Index(ctx)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	want := []string{"c", "b", "a"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("index[%d] = %q, want %q (newest first)", i, ids[i], want[i])
		}
	}
}

func TestGet_RoundTrip(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	original := newTemplate("a", "round-trip")
	original.Scope = models.Scope{
		Projects:   models.Axis{"PROJ"},
		IssueTypes: models.Axis{"Bug", "Task"},
	}
	original.Summary = "a summary"
	if err := repo.Insert(ctx, original); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, found, err := repo.Get(ctx, "a")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if got.Name != "round-trip" || got.Summary != "a summary" {
		t.Errorf("fields lost in round trip: %+v", got)
	}
	if !got.Projects.Contains("PROJ") || !got.IssueTypes.Contains("Task") {
		t.Errorf("scope lost in round trip: %+v", got.Scope)
	}
}

func TestGet_Absent(t *testing.T) {
	repo := testRepo(t)
	_, found, err := repo.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected found=false for absent id")
	}
}

func TestRemove_DropsRecordAndIndexEntry(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	repo.Insert(ctx, newTemplate("a", "keep"))
	repo.Insert(ctx, newTemplate("b", "drop"))

	if err := repo.Remove(ctx, "b"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if _, found, _ := repo.Get(ctx, "b"); found {
		t.Error("record should be gone after remove")
	}
	ids, _ := repo.Index(ctx)
	if len(ids) != 1 || ids[0] != "a" {
		t.Errorf("index should only hold 'a', got %v", ids)
	}
}

func TestList_SkipsDanglingIds(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	repo.Insert(ctx, newTemplate("a", "alive"))
	repo.Insert(ctx, newTemplate("b", "dangling"))

	// Delete the record directly, leaving the index entry behind.
	kv := repo.store
	if err := kv.Delete(ctx, repo.templateKey("b")); err != nil {
		t.Fatalf("delete record: %v", err)
	}

	templates, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(templates) != 1 || templates[0].ID != "a" {
		t.Errorf("expected only 'a', got %+v", templates)
	}
}
