package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AnkitSingh-ai/templaterepo/internal/service"
)

// TemplateHandler exposes template CRUD, assignment, and filtering endpoints.
type TemplateHandler struct {
	svc *service.TemplateService
}

// NewTemplateHandler creates a TemplateHandler.
func NewTemplateHandler(svc *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{svc: svc}
}

// CreateTemplateRequest is the create endpoint's JSON body.
type CreateTemplateRequest struct {
	Name       string   `json:"name" binding:"required"`
	Summary    string   `json:"summary"`
	Content    string   `json:"content"`
	Projects   []string `json:"assigned_projects"`
	IssueTypes []string `json:"assigned_issue_types"`
	Active     bool     `json:"active"`
}

// UpdateTemplateRequest is the update endpoint's JSON body; omitted fields
// are left unchanged.
type UpdateTemplateRequest struct {
	Name    *string `json:"name"`
	Summary *string `json:"summary"`
	Content *string `json:"content"`
}

// AssignScopeRequest is the assignment endpoint's JSON body; omitted axes are
// left unchanged, empty arrays set the wildcard.
type AssignScopeRequest struct {
	Projects   *[]string `json:"assigned_projects"`
	IssueTypes *[]string `json:"assigned_issue_types"`
}

// SetActiveRequest is the activation endpoint's JSON body.
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}

// ListTemplates godoc
// @Summary List templates, newest first
// @Tags templates
// @Security BearerAuth
// @Produce json
// @Param page query int false "1-based page"
// @Param limit query int false "Page size"
// @Param project query string false "Filter by assigned project key, or * for templates with no project scope"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} ErrorResponse
// @Router /templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	page, limit := pagination(c)

	var err error
	var templates interface{}
	var total int

	if project := c.Query("project"); project != "" {
		templates, total, err = h.svc.FilterByProject(c.Request.Context(), project, page, limit)
	} else {
		templates, total, err = h.svc.List(c.Request.Context(), page, limit)
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"templates": templates,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

// CreateTemplate godoc
// @Summary Create a template
// @Tags templates
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param template body CreateTemplateRequest true "Template fields"
// @Success 201 {object} models.Template
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	t, err := h.svc.Create(c.Request.Context(), service.CreateRequest{
		Name:       req.Name,
		Summary:    req.Summary,
		Content:    req.Content,
		Projects:   req.Projects,
		IssueTypes: req.IssueTypes,
		Active:     req.Active,
	}, getPrincipal(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, t)
}

// GetTemplate godoc
// @Summary Get a template by id
// @Tags templates
// @Security BearerAuth
// @Produce json
// @Param id path string true "Template id"
// @Success 200 {object} models.Template
// @Failure 404 {object} ErrorResponse
// @Router /templates/{id} [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	t, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// UpdateTemplate godoc
// @Summary Update a template's display fields
// @Tags templates
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Template id"
// @Param template body UpdateTemplateRequest true "Fields to change"
// @Success 200 {object} models.Template
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /templates/{id} [put]
func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	t, err := h.svc.Update(c.Request.Context(), c.Param("id"), service.UpdateRequest{
		Name:    req.Name,
		Summary: req.Summary,
		Content: req.Content,
	}, getPrincipal(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// DeleteTemplate godoc
// @Summary Soft-delete a template, or remove it entirely with hard=true
// @Tags templates
// @Security BearerAuth
// @Param id path string true "Template id"
// @Param hard query bool false "Hard delete"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /templates/{id} [delete]
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	hard := c.Query("hard") == "true"
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), hard, getPrincipal(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DuplicateTemplate godoc
// @Summary Create an inactive copy of a template
// @Tags templates
// @Security BearerAuth
// @Produce json
// @Param id path string true "Template id"
// @Success 201 {object} models.Template
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /templates/{id}/duplicate [post]
func (h *TemplateHandler) DuplicateTemplate(c *gin.Context) {
	t, err := h.svc.Duplicate(c.Request.Context(), c.Param("id"), getPrincipal(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// AssignScope godoc
// @Summary Replace a template's assigned projects and/or issue types
// @Tags templates
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Template id"
// @Param scope body AssignScopeRequest true "Axes to replace"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /templates/{id}/assignments [put]
func (h *TemplateHandler) AssignScope(c *gin.Context) {
	var req AssignScopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	t, deactivated, err := h.svc.AssignScope(c.Request.Context(), c.Param("id"), service.AssignRequest{
		Projects:   req.Projects,
		IssueTypes: req.IssueTypes,
	}, getPrincipal(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"template":    t,
		"deactivated": deactivated,
	})
}

// GetAssignments godoc
// @Summary Get a template's assigned projects and issue types
// @Tags templates
// @Security BearerAuth
// @Produce json
// @Param id path string true "Template id"
// @Success 200 {object} models.Scope
// @Failure 404 {object} ErrorResponse
// @Router /templates/{id}/assignments [get]
func (h *TemplateHandler) GetAssignments(c *gin.Context) {
	scope, err := h.svc.GetAssignments(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, scope)
}

// SetActive godoc
// @Summary Activate or deactivate a template
// @Description Activation deactivates every other active template with an overlapping scope.
// @Tags templates
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Template id"
// @Param body body SetActiveRequest true "Desired active flag"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /templates/{id}/active [put]
func (h *TemplateHandler) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Active == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "active flag is required"})
		return
	}

	t, deactivated, err := h.svc.SetActive(c.Request.Context(), c.Param("id"), *req.Active, getPrincipal(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"template":    t,
		"deactivated": deactivated,
	})
}

// SearchTemplates godoc
// @Summary Search templates by name
// @Tags templates
// @Security BearerAuth
// @Produce json
// @Param q query string true "Case-insensitive name substring"
// @Param limit query int false "Result cap"
// @Success 200 {array} models.Template
// @Failure 500 {object} ErrorResponse
// @Router /templates/search [get]
func (h *TemplateHandler) SearchTemplates(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	templates, err := h.svc.SearchByName(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

// ListFilterProjects godoc
// @Summary Aggregate template counts per assigned project key
// @Description The "*" bucket counts templates with no project scope.
// @Tags templates
// @Security BearerAuth
// @Produce json
// @Success 200 {array} service.ProjectCount
// @Failure 500 {object} ErrorResponse
// @Router /templates/filter-projects [get]
func (h *TemplateHandler) ListFilterProjects(c *gin.Context) {
	counts, err := h.svc.ListFilterProjects(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
