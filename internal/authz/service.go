package authz

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/AnkitSingh-ai/templaterepo/internal/models"
	"github.com/AnkitSingh-ai/templaterepo/internal/repository"
)

//go:embed model.conf
var modelConf string

// adminObject/adminAction are the single policy tuple granting full template
// management.
const (
	adminObject = "templates"
	adminAction = "admin"
)

// Service is the default Authorizer. Decisions combine, in order: the global
// allow-all flag, admin membership (held in a Casbin enforcer synced from the
// stored admin list), record ownership, and project-admin permissions from
// the external permission service.
type Service struct {
	settings *repository.SettingsRepository
	perms    *PermissionClient // nil disables the external fallback

	mu       sync.Mutex
	enforcer *casbin.Enforcer
}

// New creates an authorization service. perms may be nil when no external
// permission service is configured.
func New(settings *repository.SettingsRepository, perms *PermissionClient) (*Service, error) {
	m, err := model.NewModelFromString(modelConf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	return &Service{settings: settings, perms: perms, enforcer: e}, nil
}

// SyncAdmins replaces the enforcer's policies with one admin grant per
// principal. Called at startup and whenever the global config changes.
func (s *Service) SyncAdmins(admins []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()
	for _, principal := range admins {
		if _, err := s.enforcer.AddPolicy(principal, adminObject, adminAction); err != nil {
			return fmt.Errorf("add admin policy for %s: %w", principal, err)
		}
	}
	slog.Debug("Admin policies synced", "count", len(admins))
	return nil
}

func (s *Service) isAdmin(principal string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := s.enforcer.Enforce(principal, adminObject, adminAction)
	if err != nil {
		slog.Warn("Casbin enforce failed", "principal", principal, "error", err)
		return false
	}
	return ok
}

// Can decides whether principal may perform action on tmpl. Lookup failures
// of any kind deny.
func (s *Service) Can(ctx context.Context, principal string, action Action, tmpl *models.Template) bool {
	if principal == "" {
		return false
	}

	cfg, err := s.settings.GlobalConfig(ctx)
	if err != nil {
		slog.Warn("Global config unavailable, denying", "principal", principal, "action", action, "error", err)
		return false
	}
	if err := s.SyncAdmins(cfg.Admins); err != nil {
		slog.Warn("Admin sync failed, denying", "error", err)
		return false
	}

	if s.isAdmin(principal) {
		return true
	}

	// Config and project-setting changes are admin-only.
	if action == ActionEditConfig || action == ActionEditSettings {
		return false
	}

	if cfg.AllowAllUsers {
		return true
	}

	if tmpl != nil && tmpl.Owner != "" && tmpl.Owner == principal {
		return true
	}

	// Project-scoped fallback: a principal holding a project-admin
	// equivalent permission on every project the template is assigned to
	// may manage it. Wildcard scopes have no bounded project set and stay
	// admin-only.
	if tmpl != nil && s.perms != nil && !tmpl.Projects.IsWildcard() {
		for _, projectKey := range tmpl.Projects {
			if !s.perms.HasProjectAdmin(ctx, principal, projectKey) {
				return false
			}
		}
		return true
	}

	return false
}
