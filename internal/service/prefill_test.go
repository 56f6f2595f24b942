package service

import (
	"context"
	"errors"
	"testing"

	"github.com/AnkitSingh-ai/templaterepo/internal/models"
)

func TestFindMatch_RequiresProjectKey(t *testing.T) {
	svc, _ := testSetup(t)

	_, err := svc.FindMatch(context.Background(), "", "Bug")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}

func TestFindMatch_NoMatchIsNilNil(t *testing.T) {
	svc, _ := testSetup(t)

	tmpl, err := svc.FindMatch(context.Background(), "PROJ", "Bug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tmpl != nil {
		t.Errorf("expected no match, got %+v", tmpl)
	}
}

func TestFindMatch_SkipsInactiveAndDeleted(t *testing.T) {
	svc, _ := testSetup(t)
	ctx := context.Background()

	createTemplate(t, svc, "inactive", nil, nil)

	deleted := createTemplate(t, svc, "deleted", nil, nil)
	svc.SetActive(ctx, deleted.ID, true, "alice")
	if err := svc.Delete(ctx, deleted.ID, false, "alice"); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	tmpl, err := svc.FindMatch(ctx, "PROJ", "Bug")
	if err != nil {
		t.Fatalf("find match: %v", err)
	}
	if tmpl != nil {
		t.Errorf("inactive and soft-deleted templates must not match, got %q", tmpl.Name)
	}
}

func TestFindMatch_NewestFirstWins(t *testing.T) {
	svc, _ := testSetup(t)
	ctx := context.Background()

	// Disjoint project scopes so both can be active at once, plus a third
	// whose scope covers the queried pair. Newest matching wins.
	older := createTemplate(t, svc, "older", []string{"PROJ"}, []string{"Bug"})
	svc.SetActive(ctx, older.ID, true, "alice")

	newer := createTemplate(t, svc, "newer", []string{"PROJ"}, []string{"Task"})
	svc.SetActive(ctx, newer.ID, true, "alice")

	tmpl, err := svc.FindMatch(ctx, "PROJ", "Bug")
	if err != nil {
		t.Fatalf("find match: %v", err)
	}
	if tmpl == nil || tmpl.Name != "older" {
		t.Fatalf("expected scope-respecting match 'older', got %+v", tmpl)
	}

	tmpl, err = svc.FindMatch(ctx, "PROJ", "Task")
	if err != nil {
		t.Fatalf("find match: %v", err)
	}
	if tmpl == nil || tmpl.Name != "newer" {
		t.Fatalf("expected 'newer' for Task, got %+v", tmpl)
	}
}

func TestFindMatch_SoftDeleteFallsThroughToOlder(t *testing.T) {
	svc, _ := testSetup(t)
	ctx := context.Background()

	first := createTemplate(t, svc, "first", []string{"PROJ"}, nil)
	svc.SetActive(ctx, first.ID, true, "alice")

	second := createTemplate(t, svc, "second", []string{"PROJ"}, nil)
	svc.SetActive(ctx, second.ID, true, "alice") // deactivates first

	svc.SetActive(ctx, first.ID, true, "alice") // reactivate
	svc.Delete(ctx, second.ID, false, "alice")

	tmpl, err := svc.FindMatch(ctx, "PROJ", "")
	if err != nil {
		t.Fatalf("find match: %v", err)
	}
	if tmpl == nil || tmpl.Name != "first" {
		t.Fatalf("expected fall-through to 'first', got %+v", tmpl)
	}
}

func TestComputePrefill_NeverOverwritesCallerText(t *testing.T) {
	tmpl := &models.Template{Summary: "tpl summary", Content: "tpl description"}

	p := ComputePrefill(tmpl, "", "")
	if !p.ApplySummary || !p.ApplyDescription {
		t.Errorf("blank fields should be applied, got %+v", p)
	}
	if p.Summary != "tpl summary" || p.Description != "tpl description" {
		t.Errorf("template text not carried: %+v", p)
	}

	p = ComputePrefill(tmpl, "user typed this", "   \t  ")
	if p.ApplySummary {
		t.Error("non-blank summary must not be overwritten")
	}
	if !p.ApplyDescription {
		t.Error("whitespace-only description counts as blank")
	}
}

func TestComputePrefill_BlankTemplateFieldsSuggestNothing(t *testing.T) {
	tmpl := &models.Template{Summary: "  ", Content: ""}

	p := ComputePrefill(tmpl, "", "")
	if p.ApplySummary || p.ApplyDescription {
		t.Errorf("blank template fields should not suggest application, got %+v", p)
	}
	if p.Summary != "" || p.Description != "" {
		t.Errorf("blank template fields should not carry text, got %+v", p)
	}
}
