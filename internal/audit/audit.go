// Package audit records template mutations in the associative store so admins
// can review recent changes.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/AnkitSingh-ai/templaterepo/internal/store"
)

// maxEntries bounds the stored trail; older entries fall off the end.
const maxEntries = 500

// Audit action constants.
const (
	ActionCreateTemplate    = "create_template"
	ActionUpdateTemplate    = "update_template"
	ActionDeleteTemplate    = "delete_template"
	ActionDuplicateTemplate = "duplicate_template"
	ActionAssignScope       = "assign_scope"
	ActionSetActive         = "set_active"
	ActionUpdateConfig      = "update_config"
	ActionUpdateSettings    = "update_settings"
)

// Entry is one recorded action.
type Entry struct {
	Principal string                 `json:"principal"`
	Action    string                 `json:"action"`
	Resource  string                 `json:"resource"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Trail is a bounded, newest-first log of entries under a single store key.
type Trail struct {
	store store.Store
	key   string
}

// NewTrail creates a trail stored under "<prefix>:audit".
func NewTrail(s store.Store, prefix string) *Trail {
	return &Trail{store: s, key: prefix + ":audit"}
}

// Record prepends an entry to the trail. Audit failures are logged, never
// propagated: an unwritable trail must not fail the operation it describes.
func (t *Trail) Record(ctx context.Context, principal, action, resource string, details map[string]interface{}) {
	entries, err := t.Entries(ctx)
	if err != nil {
		slog.Warn("Audit trail unreadable, dropping entry", "action", action, "error", err)
		return
	}

	entries = append([]Entry{{
		Principal: principal,
		Action:    action,
		Resource:  resource,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}}, entries...)
	if len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		slog.Warn("Audit trail unencodable, dropping entry", "action", action, "error", err)
		return
	}
	if err := t.store.Set(ctx, t.key, string(raw)); err != nil {
		slog.Warn("Audit trail unwritable, dropping entry", "action", action, "error", err)
	}
}

// Entries returns the trail, newest first. An absent trail reads as empty.
func (t *Trail) Entries(ctx context.Context) ([]Entry, error) {
	raw, found, err := t.store.Get(ctx, t.key)
	if err != nil {
		return nil, err
	}
	if !found {
		return []Entry{}, nil
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
