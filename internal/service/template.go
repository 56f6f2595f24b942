// Package service contains the business logic for issue templates: CRUD over
// the template repository, the assignment and uniqueness-enforcement engine,
// and the prefill resolver.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AnkitSingh-ai/templaterepo/internal/audit"
	"github.com/AnkitSingh-ai/templaterepo/internal/authz"
	"github.com/AnkitSingh-ai/templaterepo/internal/models"
	"github.com/AnkitSingh-ai/templaterepo/internal/repository"
)

// TemplateService contains the business logic for template operations. All
// mutating operations validate and authorize before the first write.
type TemplateService struct {
	repo  *repository.TemplateRepository
	authz authz.Authorizer
	trail *audit.Trail
}

// New creates a TemplateService.
func New(repo *repository.TemplateRepository, az authz.Authorizer, trail *audit.Trail) *TemplateService {
	return &TemplateService{repo: repo, authz: az, trail: trail}
}

// getVisible loads a template by id, hiding soft-deleted records.
func (s *TemplateService) getVisible(ctx context.Context, id string) (*models.Template, error) {
	if id == "" {
		return nil, &ValidationError{Message: "template id is required"}
	}
	t, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found || t.Deleted {
		return nil, ErrNotFound
	}
	return t, nil
}

func (s *TemplateService) authorize(ctx context.Context, principal string, action authz.Action, tmpl *models.Template) error {
	if !s.authz.Can(ctx, principal, action, tmpl) {
		return &AuthorizationError{Message: fmt.Sprintf("principal is not allowed to %s", action)}
	}
	return nil
}

// Create validates and creates a new template. When the request asks for an
// active template, uniqueness is enforced immediately after insertion.
func (s *TemplateService) Create(ctx context.Context, req CreateRequest, principal string) (*models.Template, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, &ValidationError{Message: "template name is required"}
	}
	if err := s.authorize(ctx, principal, authz.ActionCreateTemplate, nil); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := &models.Template{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Summary: req.Summary,
		Content: req.Content,
		Scope: models.Scope{
			Projects:   normalizeAxis(req.Projects),
			IssueTypes: normalizeAxis(req.IssueTypes),
		},
		Active:    req.Active,
		Owner:     principal,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, t); err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}

	var deactivated []string
	if t.Active {
		var err error
		if deactivated, err = s.enforceUniqueness(ctx, t); err != nil {
			return nil, err
		}
	}

	s.trail.Record(ctx, principal, audit.ActionCreateTemplate, t.ID, map[string]interface{}{
		"name":        t.Name,
		"active":      t.Active,
		"deactivated": deactivated,
	})
	return t, nil
}

// Get returns a single template by id.
func (s *TemplateService) Get(ctx context.Context, id string) (*models.Template, error) {
	return s.getVisible(ctx, id)
}

// List returns non-deleted templates in index order (newest first), paginated
// with 1-based pages. It also reports the total count before pagination.
func (s *TemplateService) List(ctx context.Context, page, limit int) ([]models.Template, int, error) {
	all, err := s.visibleTemplates(ctx)
	if err != nil {
		return nil, 0, err
	}
	pageItems := paginate(all, page, limit)
	return pageItems, len(all), nil
}

// Update applies display-field changes. Supplying an empty name is rejected;
// omitted fields are left unchanged.
func (s *TemplateService) Update(ctx context.Context, id string, req UpdateRequest, principal string) (*models.Template, error) {
	t, err := s.getVisible(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, &ValidationError{Message: "template name must not be empty"}
	}
	if err := s.authorize(ctx, principal, authz.ActionEditTemplate, t); err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Summary != nil {
		t.Summary = *req.Summary
	}
	if req.Content != nil {
		t.Content = *req.Content
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}

	s.trail.Record(ctx, principal, audit.ActionUpdateTemplate, t.ID, map[string]interface{}{
		"name": t.Name,
	})
	return t, nil
}

// Delete soft-deletes a template, forcing it inactive while retaining the
// record. With hard=true the record and its index entry are removed; a
// soft-deleted template stays addressable for hard deletion.
func (s *TemplateService) Delete(ctx context.Context, id string, hard bool, principal string) error {
	if id == "" {
		return &ValidationError{Message: "template id is required"}
	}
	t, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !found || (t.Deleted && !hard) {
		return ErrNotFound
	}
	if err := s.authorize(ctx, principal, authz.ActionDeleteTemplate, t); err != nil {
		return err
	}

	if hard {
		if err := s.repo.Remove(ctx, id); err != nil {
			return fmt.Errorf("hard-delete template: %w", err)
		}
	} else {
		t.Deleted = true
		t.Active = false
		t.UpdatedAt = time.Now().UTC()
		if err := s.repo.Save(ctx, t); err != nil {
			return fmt.Errorf("soft-delete template: %w", err)
		}
	}

	s.trail.Record(ctx, principal, audit.ActionDeleteTemplate, id, map[string]interface{}{
		"hard": hard,
	})
	return nil
}

// Duplicate creates an inactive copy of a template with a fresh id, the
// caller as owner, and the same scope and content.
func (s *TemplateService) Duplicate(ctx context.Context, id string, principal string) (*models.Template, error) {
	src, err := s.getVisible(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, principal, authz.ActionCreateTemplate, nil); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	copyT := &models.Template{
		ID:      uuid.NewString(),
		Name:    src.Name + " (copy)",
		Summary: src.Summary,
		Content: src.Content,
		Scope: models.Scope{
			Projects:   append(models.Axis{}, src.Projects...),
			IssueTypes: append(models.Axis{}, src.IssueTypes...),
		},
		Owner:     principal,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, copyT); err != nil {
		return nil, fmt.Errorf("duplicate template: %w", err)
	}

	s.trail.Record(ctx, principal, audit.ActionDuplicateTemplate, copyT.ID, map[string]interface{}{
		"source": src.ID,
	})
	return copyT, nil
}

// AssignScope replaces the supplied axis sets on the template. Axes not
// supplied are left unchanged. If the template is active, uniqueness is
// enforced immediately; the returned slice holds the deactivated ids in index
// order.
func (s *TemplateService) AssignScope(ctx context.Context, id string, req AssignRequest, principal string) (*models.Template, []string, error) {
	t, err := s.getVisible(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := s.authorize(ctx, principal, authz.ActionAssignTemplate, t); err != nil {
		return nil, nil, err
	}

	if req.Projects != nil {
		t.Projects = normalizeAxis(*req.Projects)
	}
	if req.IssueTypes != nil {
		t.IssueTypes = normalizeAxis(*req.IssueTypes)
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, t); err != nil {
		return nil, nil, fmt.Errorf("assign scope: %w", err)
	}

	var deactivated []string
	if t.Active {
		if deactivated, err = s.enforceUniqueness(ctx, t); err != nil {
			return nil, nil, err
		}
	}

	s.trail.Record(ctx, principal, audit.ActionAssignScope, t.ID, map[string]interface{}{
		"projects":    t.Projects,
		"issue_types": t.IssueTypes,
		"deactivated": deactivated,
	})
	return t, deactivated, nil
}

// SetActive sets the active flag. Transitioning to active runs uniqueness
// enforcement; the returned slice holds the deactivated ids in index order.
// Setting the flag to its current value is a no-op.
func (s *TemplateService) SetActive(ctx context.Context, id string, active bool, principal string) (*models.Template, []string, error) {
	t, err := s.getVisible(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := s.authorize(ctx, principal, authz.ActionActivateTemplate, t); err != nil {
		return nil, nil, err
	}

	if t.Active == active {
		return t, nil, nil
	}

	t.Active = active
	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, nil, fmt.Errorf("set active: %w", err)
	}

	var deactivated []string
	if active {
		if deactivated, err = s.enforceUniqueness(ctx, t); err != nil {
			return nil, nil, err
		}
	}

	s.trail.Record(ctx, principal, audit.ActionSetActive, t.ID, map[string]interface{}{
		"active":      active,
		"deactivated": deactivated,
	})
	return t, deactivated, nil
}

// GetAssignments returns the template's current scope.
func (s *TemplateService) GetAssignments(ctx context.Context, id string) (models.Scope, error) {
	t, err := s.getVisible(ctx, id)
	if err != nil {
		return models.Scope{}, err
	}
	return t.Scope, nil
}

// enforceUniqueness is the single authority for the one-active-per-scope
// invariant: every other active, non-deleted template whose scope overlaps
// t's scope on both axes is deactivated. Returns the deactivated ids in
// index order. Re-running with no intervening change deactivates nothing.
//
// The index scan and per-record writes are not atomic: two concurrent
// activations of overlapping templates can each observe the other as still
// active and deactivate it. The invariant is best-effort under concurrent
// writers, converging once the writers settle.
func (s *TemplateService) enforceUniqueness(ctx context.Context, t *models.Template) ([]string, error) {
	ids, err := s.repo.Index(ctx)
	if err != nil {
		return nil, err
	}

	deactivated := []string{}
	for _, id := range ids {
		if id == t.ID {
			continue
		}
		other, found, err := s.repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found || other.Deleted || !other.Active {
			continue
		}
		if !t.Scope.Overlaps(other.Scope) {
			continue
		}

		other.Active = false
		other.UpdatedAt = time.Now().UTC()
		if err := s.repo.Save(ctx, other); err != nil {
			return nil, fmt.Errorf("deactivate overlapping template %s: %w", other.ID, err)
		}
		deactivated = append(deactivated, other.ID)
		slog.Info("Deactivated overlapping template",
			"template_id", other.ID, "winner_id", t.ID)
	}
	return deactivated, nil
}

// SearchByName returns non-deleted templates whose name contains query
// (case-insensitive), in index order, capped at limit.
func (s *TemplateService) SearchByName(ctx context.Context, query string, limit int) ([]models.Template, error) {
	all, err := s.visibleTemplates(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	matches := []models.Template{}
	for _, t := range all {
		if needle != "" && !strings.Contains(strings.ToLower(t.Name), needle) {
			continue
		}
		matches = append(matches, t)
		if len(matches) == limit {
			break
		}
	}
	return matches, nil
}

// FilterByProject returns non-deleted templates explicitly assigned to
// projectKey, paginated. WildcardBucket selects templates with no project
// scope instead. It also reports the total count before pagination.
func (s *TemplateService) FilterByProject(ctx context.Context, projectKey string, page, limit int) ([]models.Template, int, error) {
	if projectKey == "" {
		return nil, 0, &ValidationError{Message: "project key is required"}
	}
	all, err := s.visibleTemplates(ctx)
	if err != nil {
		return nil, 0, err
	}

	matches := []models.Template{}
	for _, t := range all {
		if projectKey == WildcardBucket {
			if t.Projects.IsWildcard() {
				matches = append(matches, t)
			}
		} else if t.Projects.Contains(projectKey) {
			matches = append(matches, t)
		}
	}
	return paginate(matches, page, limit), len(matches), nil
}

// ListFilterProjects aggregates non-deleted templates per assigned project
// key, with the WildcardBucket counting templates that have no project scope.
// The wildcard bucket comes first, concrete keys follow sorted.
func (s *TemplateService) ListFilterProjects(ctx context.Context) ([]ProjectCount, error) {
	all, err := s.visibleTemplates(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	wildcard := 0
	for _, t := range all {
		if t.Projects.IsWildcard() {
			wildcard++
			continue
		}
		for _, key := range t.Projects {
			counts[key]++
		}
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := make([]ProjectCount, 0, len(keys)+1)
	if wildcard > 0 {
		result = append(result, ProjectCount{ProjectKey: WildcardBucket, Count: wildcard})
	}
	for _, key := range keys {
		result = append(result, ProjectCount{ProjectKey: key, Count: counts[key]})
	}
	return result, nil
}

// visibleTemplates lists non-deleted templates in index order.
func (s *TemplateService) visibleTemplates(ctx context.Context) ([]models.Template, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]models.Template, 0, len(all))
	for _, t := range all {
		if !t.Deleted {
			visible = append(visible, t)
		}
	}
	return visible, nil
}

// normalizeAxis drops blank entries and deduplicates while preserving order.
func normalizeAxis(values []string) models.Axis {
	axis := models.Axis{}
	seen := map[string]bool{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		axis = append(axis, v)
	}
	return axis
}

// paginate slices items into 1-based pages of size limit.
func paginate(items []models.Template, page, limit int) []models.Template {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []models.Template{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
