package authz

import (
	"context"
	"testing"

	"github.com/AnkitSingh-ai/templaterepo/internal/models"
	"github.com/AnkitSingh-ai/templaterepo/internal/repository"
	"github.com/AnkitSingh-ai/templaterepo/internal/store"
)

func testAuthz(t *testing.T, cfg models.GlobalConfig) *Service {
	t.Helper()

	settings := repository.NewSettingsRepository(store.NewMemoryStore(), "test")
	if err := settings.SaveGlobalConfig(context.Background(), cfg); err != nil {
		t.Fatalf("seed config: %v", err)
	}
	svc, err := New(settings, nil)
	if err != nil {
		t.Fatalf("init authorizer: %v", err)
	}
	return svc
}

func TestCan_EmptyPrincipalAlwaysDenied(t *testing.T) {
	svc := testAuthz(t, models.GlobalConfig{AllowAllUsers: true})

	if svc.Can(context.Background(), "", ActionCreateTemplate, nil) {
		t.Error("empty principal must be denied even under allow-all")
	}
}

func TestCan_AllowAllUsers(t *testing.T) {
	svc := testAuthz(t, models.GlobalConfig{AllowAllUsers: true})
	ctx := context.Background()

	if !svc.Can(ctx, "anyone", ActionCreateTemplate, nil) {
		t.Error("allow-all should grant template actions to any principal")
	}
	if svc.Can(ctx, "anyone", ActionEditConfig, nil) {
		t.Error("allow-all must not grant config editing")
	}
	if svc.Can(ctx, "anyone", ActionEditSettings, nil) {
		t.Error("allow-all must not grant settings editing")
	}
}

func TestCan_AdminGetsEverything(t *testing.T) {
	svc := testAuthz(t, models.GlobalConfig{Admins: []string{"root"}})
	ctx := context.Background()

	actions := []Action{
		ActionCreateTemplate, ActionEditTemplate, ActionDeleteTemplate,
		ActionAssignTemplate, ActionActivateTemplate,
		ActionEditConfig, ActionEditSettings,
	}
	for _, a := range actions {
		if !svc.Can(ctx, "root", a, nil) {
			t.Errorf("admin denied %s", a)
		}
	}
	if svc.Can(ctx, "peon", ActionCreateTemplate, nil) {
		t.Error("non-admin should be denied when allow-all is off")
	}
}

func TestCan_OwnerMayManageOwnTemplate(t *testing.T) {
	svc := testAuthz(t, models.GlobalConfig{})
	ctx := context.Background()

	tmpl := &models.Template{ID: "t1", Owner: "alice"}
	if !svc.Can(ctx, "alice", ActionEditTemplate, tmpl) {
		t.Error("owner should manage their own template")
	}
	if svc.Can(ctx, "bob", ActionEditTemplate, tmpl) {
		t.Error("non-owner should be denied")
	}
}

func TestCan_OwnerlessTemplateDoesNotMatchEmptyOwner(t *testing.T) {
	svc := testAuthz(t, models.GlobalConfig{})

	tmpl := &models.Template{ID: "t1"}
	if svc.Can(context.Background(), "alice", ActionEditTemplate, tmpl) {
		t.Error("ownerless templates grant nothing through the owner rule")
	}
}

func TestCan_ConfigChangeReflectedWithoutRestart(t *testing.T) {
	settings := repository.NewSettingsRepository(store.NewMemoryStore(), "test")
	ctx := context.Background()
	if err := settings.SaveGlobalConfig(ctx, models.GlobalConfig{}); err != nil {
		t.Fatalf("seed config: %v", err)
	}
	svc, err := New(settings, nil)
	if err != nil {
		t.Fatalf("init authorizer: %v", err)
	}

	if svc.Can(ctx, "carol", ActionCreateTemplate, nil) {
		t.Fatal("carol should start without permissions")
	}

	if err := settings.SaveGlobalConfig(ctx, models.GlobalConfig{Admins: []string{"carol"}}); err != nil {
		t.Fatalf("update config: %v", err)
	}
	if !svc.Can(ctx, "carol", ActionCreateTemplate, nil) {
		t.Error("promoting carol to admin should take effect on the next check")
	}
}
