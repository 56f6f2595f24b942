package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnkitSingh-ai/templaterepo/internal/audit"
	"github.com/AnkitSingh-ai/templaterepo/internal/authz"
	"github.com/AnkitSingh-ai/templaterepo/internal/models"
	"github.com/AnkitSingh-ai/templaterepo/internal/repository"
)

// SettingsHandler exposes per-project template settings.
type SettingsHandler struct {
	settings *repository.SettingsRepository
	authz    *authz.Service
	trail    *audit.Trail
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(settings *repository.SettingsRepository, az *authz.Service, trail *audit.Trail) *SettingsHandler {
	return &SettingsHandler{settings: settings, authz: az, trail: trail}
}

// UpdateSettingsRequest is the project-settings endpoint's JSON body.
type UpdateSettingsRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// GetProjectSettings godoc
// @Summary Get a project's template settings
// @Tags settings
// @Security BearerAuth
// @Produce json
// @Param key path string true "Project key"
// @Success 200 {object} models.ProjectSettings
// @Failure 500 {object} ErrorResponse
// @Router /projects/{key}/settings [get]
func (h *SettingsHandler) GetProjectSettings(c *gin.Context) {
	settings, err := h.settings.ProjectSettings(c.Request.Context(), c.Param("key"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateProjectSettings godoc
// @Summary Set whether a project opts into global templates (admin only)
// @Tags settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param key path string true "Project key"
// @Param settings body UpdateSettingsRequest true "New settings"
// @Success 200 {object} models.ProjectSettings
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /projects/{key}/settings [put]
func (h *SettingsHandler) UpdateProjectSettings(c *gin.Context) {
	principal := getPrincipal(c)
	if !h.authz.Can(c.Request.Context(), principal, authz.ActionEditSettings, nil) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin access required"})
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "enabled flag is required"})
		return
	}

	projectKey := c.Param("key")
	settings := models.ProjectSettings{Enabled: *req.Enabled}
	if err := h.settings.SaveProjectSettings(c.Request.Context(), projectKey, settings); err != nil {
		handleServiceError(c, err)
		return
	}

	h.trail.Record(c.Request.Context(), principal, audit.ActionUpdateSettings, projectKey, map[string]interface{}{
		"enabled": settings.Enabled,
	})
	c.JSON(http.StatusOK, settings)
}
