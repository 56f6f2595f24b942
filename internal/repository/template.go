// Package repository provides typed access to the associative store, hiding
// the key-construction scheme from the rest of the system.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/AnkitSingh-ai/templaterepo/internal/models"
	"github.com/AnkitSingh-ai/templaterepo/internal/store"
)

// TemplateRepository persists Template records and the ordered id index.
// Records live under "<prefix>:template:<id>"; the index, a JSON array of ids
// in newest-first order, lives under "<prefix>:index". The index defines
// enumeration order for matching (first match wins) and pagination.
type TemplateRepository struct {
	store  store.Store
	prefix string
}

// NewTemplateRepository creates a repository over s using the given key
// prefix.
func NewTemplateRepository(s store.Store, prefix string) *TemplateRepository {
	return &TemplateRepository{store: s, prefix: prefix}
}

func (r *TemplateRepository) templateKey(id string) string {
	return fmt.Sprintf("%s:template:%s", r.prefix, id)
}

func (r *TemplateRepository) indexKey() string {
	return r.prefix + ":index"
}

// Index returns the ordered template id sequence, newest first. An absent
// index reads as empty.
func (r *TemplateRepository) Index(ctx context.Context) ([]string, error) {
	raw, found, err := r.store.Get(ctx, r.indexKey())
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	if !found {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	return ids, nil
}

func (r *TemplateRepository) writeIndex(ctx context.Context, ids []string) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	if err := r.store.Set(ctx, r.indexKey(), string(raw)); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return nil
}

// Get returns the template record for id, if present. Soft-deleted records
// are returned as stored; visibility filtering is the caller's concern.
func (r *TemplateRepository) Get(ctx context.Context, id string) (*models.Template, bool, error) {
	raw, found, err := r.store.Get(ctx, r.templateKey(id))
	if err != nil {
		return nil, false, fmt.Errorf("read template %s: %w", id, err)
	}
	if !found {
		return nil, false, nil
	}

	var t models.Template
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil, false, fmt.Errorf("decode template %s: %w", id, err)
	}
	return &t, true, nil
}

// Save writes the template record without touching the index.
func (r *TemplateRepository) Save(ctx context.Context, t *models.Template) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode template %s: %w", t.ID, err)
	}
	if err := r.store.Set(ctx, r.templateKey(t.ID), string(raw)); err != nil {
		return fmt.Errorf("write template %s: %w", t.ID, err)
	}
	return nil
}

// Insert writes the template record and prepends its id to the index, making
// it the newest entry. The index read-modify-write is not atomic under
// concurrent writers.
func (r *TemplateRepository) Insert(ctx context.Context, t *models.Template) error {
	if err := r.Save(ctx, t); err != nil {
		return err
	}

	ids, err := r.Index(ctx)
	if err != nil {
		return err
	}
	return r.writeIndex(ctx, append([]string{t.ID}, ids...))
}

// Remove deletes the template record and drops its id from the index.
func (r *TemplateRepository) Remove(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, r.templateKey(id)); err != nil {
		return fmt.Errorf("delete template %s: %w", id, err)
	}

	ids, err := r.Index(ctx)
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	return r.writeIndex(ctx, kept)
}

// List resolves every indexed template in index order. Ids whose record has
// gone missing are skipped rather than failing the whole listing.
func (r *TemplateRepository) List(ctx context.Context) ([]models.Template, error) {
	ids, err := r.Index(ctx)
	if err != nil {
		return nil, err
	}

	templates := make([]models.Template, 0, len(ids))
	for _, id := range ids {
		t, found, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found {
			slog.Warn("Index references missing template", "template_id", id)
			continue
		}
		templates = append(templates, *t)
	}
	return templates, nil
}
