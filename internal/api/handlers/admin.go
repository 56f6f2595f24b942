package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnkitSingh-ai/templaterepo/internal/audit"
	"github.com/AnkitSingh-ai/templaterepo/internal/authz"
	"github.com/AnkitSingh-ai/templaterepo/internal/models"
	"github.com/AnkitSingh-ai/templaterepo/internal/repository"
)

// AdminHandler exposes the global config and the audit trail.
type AdminHandler struct {
	settings *repository.SettingsRepository
	authz    *authz.Service
	trail    *audit.Trail
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(settings *repository.SettingsRepository, az *authz.Service, trail *audit.Trail) *AdminHandler {
	return &AdminHandler{settings: settings, authz: az, trail: trail}
}

// UpdateConfigRequest is the config endpoint's JSON body.
type UpdateConfigRequest struct {
	AllowAllUsers bool     `json:"allow_all_users"`
	Admins        []string `json:"admins"`
}

// GetConfig godoc
// @Summary Get the global template configuration
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.GlobalConfig
// @Failure 500 {object} ErrorResponse
// @Router /admin/config [get]
func (h *AdminHandler) GetConfig(c *gin.Context) {
	cfg, err := h.settings.GlobalConfig(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateConfig godoc
// @Summary Update the global template configuration (admin only)
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param config body UpdateConfigRequest true "New configuration"
// @Success 200 {object} models.GlobalConfig
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/config [put]
func (h *AdminHandler) UpdateConfig(c *gin.Context) {
	principal := getPrincipal(c)
	if !h.authz.Can(c.Request.Context(), principal, authz.ActionEditConfig, nil) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin access required"})
		return
	}

	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	cfg := models.GlobalConfig{
		AllowAllUsers: req.AllowAllUsers,
		Admins:        req.Admins,
	}
	if err := h.settings.SaveGlobalConfig(c.Request.Context(), cfg); err != nil {
		handleServiceError(c, err)
		return
	}
	if err := h.authz.SyncAdmins(cfg.Admins); err != nil {
		handleServiceError(c, err)
		return
	}

	h.trail.Record(c.Request.Context(), principal, audit.ActionUpdateConfig, "config", map[string]interface{}{
		"allow_all_users": cfg.AllowAllUsers,
		"admin_count":     len(cfg.Admins),
	})
	c.JSON(http.StatusOK, cfg)
}

// ListAuditLog godoc
// @Summary List recent template mutations, newest first (admin only)
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {array} audit.Entry
// @Failure 403 {object} ErrorResponse
// @Router /admin/audit-log [get]
func (h *AdminHandler) ListAuditLog(c *gin.Context) {
	principal := getPrincipal(c)
	if !h.authz.Can(c.Request.Context(), principal, authz.ActionEditConfig, nil) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Admin access required"})
		return
	}

	entries, err := h.trail.Entries(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
