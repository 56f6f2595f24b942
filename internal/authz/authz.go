// Package authz supplies the authorization decision consumed by the template
// service. Policy (admin list, allow-all flag, ownership, external project
// permissions) lives here so the uniqueness engine stays policy-free.
package authz

import (
	"context"

	"github.com/AnkitSingh-ai/templaterepo/internal/models"
)

// Action identifies a gated operation.
type Action string

const (
	ActionCreateTemplate   Action = "template:create"
	ActionEditTemplate     Action = "template:edit"
	ActionDeleteTemplate   Action = "template:delete"
	ActionAssignTemplate   Action = "template:assign"
	ActionActivateTemplate Action = "template:activate"
	ActionEditConfig       Action = "config:edit"
	ActionEditSettings     Action = "settings:edit"
)

// Authorizer is the decision interface injected into the service layer.
// Implementations must fail closed: any lookup failure means false.
// tmpl is the record the action targets, or nil for create/config actions.
type Authorizer interface {
	Can(ctx context.Context, principal string, action Action, tmpl *models.Template) bool
}
