package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnkitSingh-ai/templaterepo/internal/repository"
	"github.com/AnkitSingh-ai/templaterepo/internal/service"
)

// PrefillHandler resolves prefill suggestions for the issue-create form.
type PrefillHandler struct {
	svc      *service.TemplateService
	settings *repository.SettingsRepository
}

// NewPrefillHandler creates a PrefillHandler.
func NewPrefillHandler(svc *service.TemplateService, settings *repository.SettingsRepository) *PrefillHandler {
	return &PrefillHandler{svc: svc, settings: settings}
}

// PrefillResponse is the prefill endpoint's JSON body.
type PrefillResponse struct {
	Matched      bool             `json:"matched"`
	TemplateID   string           `json:"template_id,omitempty"`
	TemplateName string           `json:"template_name,omitempty"`
	Prefill      *service.Prefill `json:"prefill,omitempty"`
}

// GetPrefill godoc
// @Summary Resolve the prefill suggestion for a (project, issue type) pair
// @Description Returns the newest matching active template and whether its summary/description should be applied over the caller's current form content. Projects that opted out of templates never match.
// @Tags prefill
// @Security BearerAuth
// @Produce json
// @Param project query string true "Project key"
// @Param issuetype query string false "Issue type"
// @Param summary query string false "Current form summary"
// @Param description query string false "Current form description"
// @Success 200 {object} PrefillResponse
// @Failure 400 {object} ErrorResponse
// @Router /prefill [get]
func (h *PrefillHandler) GetPrefill(c *gin.Context) {
	projectKey := c.Query("project")
	if projectKey == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "project query parameter is required"})
		return
	}

	settings, err := h.settings.ProjectSettings(c.Request.Context(), projectKey)
	if err != nil {
		slog.Warn("Project settings unreadable, treating as enabled", "project", projectKey, "error", err)
	}
	if !settings.Enabled {
		c.JSON(http.StatusOK, PrefillResponse{Matched: false})
		return
	}

	t, err := h.svc.FindMatch(c.Request.Context(), projectKey, c.Query("issuetype"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if t == nil {
		c.JSON(http.StatusOK, PrefillResponse{Matched: false})
		return
	}

	prefill := service.ComputePrefill(t, c.Query("summary"), c.Query("description"))
	c.JSON(http.StatusOK, PrefillResponse{
		Matched:      true,
		TemplateID:   t.ID,
		TemplateName: t.Name,
		Prefill:      &prefill,
	})
}
