package service

import (
	"context"
	"strings"

	"github.com/AnkitSingh-ai/templaterepo/internal/models"
)

// FindMatch scans the index in order (newest first), skipping deleted and
// inactive templates, and returns the first template whose scope matches the
// concrete (projectKey, issueType) pair. A nil template with nil error means
// no match — that is a normal outcome, not a failure.
func (s *TemplateService) FindMatch(ctx context.Context, projectKey, issueType string) (*models.Template, error) {
	if projectKey == "" {
		return nil, &ValidationError{Message: "project key is required"}
	}

	ids, err := s.repo.Index(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		t, found, err := s.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found || t.Deleted || !t.Active {
			continue
		}
		if t.Scope.Matches(projectKey, issueType) {
			return t, nil
		}
	}
	return nil, nil
}

// ComputePrefill derives the prefill suggestion for a matched template
// against the caller's current form content. Template text is only flagged
// for application when the corresponding current field is blank
// (whitespace-only counts as blank); the resolver never overwrites
// caller-supplied text.
func ComputePrefill(t *models.Template, currentSummary, currentDescription string) Prefill {
	p := Prefill{}
	if !isBlank(t.Summary) {
		p.Summary = t.Summary
		p.ApplySummary = isBlank(currentSummary)
	}
	if !isBlank(t.Content) {
		p.Description = t.Content
		p.ApplyDescription = isBlank(currentDescription)
	}
	return p
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
