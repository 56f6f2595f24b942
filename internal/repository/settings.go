package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AnkitSingh-ai/templaterepo/internal/models"
	"github.com/AnkitSingh-ai/templaterepo/internal/store"
)

// SettingsRepository persists the global config and per-project settings.
// Keys: "<prefix>:config" and "<prefix>:project:<projectKey>".
type SettingsRepository struct {
	store  store.Store
	prefix string
}

// NewSettingsRepository creates a repository over s using the given key
// prefix.
func NewSettingsRepository(s store.Store, prefix string) *SettingsRepository {
	return &SettingsRepository{store: s, prefix: prefix}
}

func (r *SettingsRepository) configKey() string {
	return r.prefix + ":config"
}

func (r *SettingsRepository) projectKey(projectKey string) string {
	return fmt.Sprintf("%s:project:%s", r.prefix, projectKey)
}

// GlobalConfig returns the stored global config; absence reads as the zero
// value (no admins, allow-all off).
func (r *SettingsRepository) GlobalConfig(ctx context.Context) (models.GlobalConfig, error) {
	var cfg models.GlobalConfig

	raw, found, err := r.store.Get(ctx, r.configKey())
	if err != nil {
		return cfg, fmt.Errorf("read global config: %w", err)
	}
	if !found {
		return cfg, nil
	}
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return cfg, fmt.Errorf("decode global config: %w", err)
	}
	return cfg, nil
}

// SaveGlobalConfig writes the global config.
func (r *SettingsRepository) SaveGlobalConfig(ctx context.Context, cfg models.GlobalConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode global config: %w", err)
	}
	if err := r.store.Set(ctx, r.configKey(), string(raw)); err != nil {
		return fmt.Errorf("write global config: %w", err)
	}
	return nil
}

// ProjectSettings returns the settings for a project. Projects with no stored
// record default to enabled.
func (r *SettingsRepository) ProjectSettings(ctx context.Context, projectKey string) (models.ProjectSettings, error) {
	settings := models.ProjectSettings{Enabled: true}

	raw, found, err := r.store.Get(ctx, r.projectKey(projectKey))
	if err != nil {
		return settings, fmt.Errorf("read project settings %s: %w", projectKey, err)
	}
	if !found {
		return settings, nil
	}
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return settings, fmt.Errorf("decode project settings %s: %w", projectKey, err)
	}
	return settings, nil
}

// SaveProjectSettings writes the settings for a project.
func (r *SettingsRepository) SaveProjectSettings(ctx context.Context, projectKey string, settings models.ProjectSettings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode project settings %s: %w", projectKey, err)
	}
	if err := r.store.Set(ctx, r.projectKey(projectKey), string(raw)); err != nil {
		return fmt.Errorf("write project settings %s: %w", projectKey, err)
	}
	return nil
}
