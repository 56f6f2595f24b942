package cliclient

import (
	"context"
	"fmt"
	"net/url"
)

// ListTemplates returns a page of templates, newest first.
func (c *Client) ListTemplates(ctx context.Context, page, limit int) (*TemplatePage, error) {
	var result TemplatePage
	path := fmt.Sprintf("/templates?page=%d&limit=%d", page, limit)
	if _, err := c.Get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTemplate returns a single template by id.
func (c *Client) GetTemplate(ctx context.Context, id string) (*Template, error) {
	var t Template
	if _, err := c.Get(ctx, "/templates/"+url.PathEscape(id), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// SetActive activates or deactivates a template and reports which other
// templates were deactivated by uniqueness enforcement.
func (c *Client) SetActive(ctx context.Context, id string, active bool) (*ActivationResult, error) {
	var result ActivationResult
	body := map[string]bool{"active": active}
	if _, err := c.Put(ctx, "/templates/"+url.PathEscape(id)+"/active", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AssignScope replaces the template's assigned projects and/or issue types.
// Nil slices leave the axis unchanged.
func (c *Client) AssignScope(ctx context.Context, id string, projects, issueTypes []string) (*ActivationResult, error) {
	body := map[string]interface{}{}
	if projects != nil {
		body["assigned_projects"] = projects
	}
	if issueTypes != nil {
		body["assigned_issue_types"] = issueTypes
	}

	var result ActivationResult
	if _, err := c.Put(ctx, "/templates/"+url.PathEscape(id)+"/assignments", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteTemplate soft-deletes a template, or removes it entirely with hard.
func (c *Client) DeleteTemplate(ctx context.Context, id string, hard bool) error {
	path := "/templates/" + url.PathEscape(id)
	if hard {
		path += "?hard=true"
	}
	_, err := c.Delete(ctx, path)
	return err
}

// GetPrefill resolves the prefill suggestion for a (project, issue type) pair.
func (c *Client) GetPrefill(ctx context.Context, projectKey, issueType string) (*PrefillResult, error) {
	path := fmt.Sprintf("/prefill?project=%s&issuetype=%s",
		url.QueryEscape(projectKey), url.QueryEscape(issueType))

	var result PrefillResult
	if _, err := c.Get(ctx, path, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetConfig returns the global template configuration.
func (c *Client) GetConfig(ctx context.Context) (*GlobalConfig, error) {
	var cfg GlobalConfig
	if _, err := c.Get(ctx, "/admin/config", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UpdateConfig replaces the global template configuration (admin only).
func (c *Client) UpdateConfig(ctx context.Context, cfg GlobalConfig) (*GlobalConfig, error) {
	var updated GlobalConfig
	if _, err := c.Put(ctx, "/admin/config", cfg, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
