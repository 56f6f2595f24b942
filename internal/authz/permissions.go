package authz

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// projectAdminKeys are permission keys that grant project-admin outright.
var projectAdminKeys = map[string]bool{
	"PROJECT_ADMIN":       true,
	"ADMINISTER_PROJECTS": true,
}

// PermissionClient queries the host's project-permission service. Concurrent
// lookups for the same (principal, project) pair are collapsed via
// singleflight. Every failure mode reads as "no permission".
type PermissionClient struct {
	baseURL    string
	httpClient *http.Client
	group      singleflight.Group
}

// NewPermissionClient creates a client for the permission service at baseURL.
func NewPermissionClient(baseURL string, timeout time.Duration) *PermissionClient {
	return &PermissionClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type permission struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type permissionsResponse struct {
	Permissions []permission `json:"permissions"`
}

// grantsProjectAdmin reports whether a single permission entry is
// project-admin equivalent: a known admin key, or a name containing "admin".
func grantsProjectAdmin(p permission) bool {
	if projectAdminKeys[p.Key] {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), "admin")
}

// HasProjectAdmin reports whether principal holds a project-admin equivalent
// permission on projectKey. Transport errors, non-2xx responses, and
// unparsable bodies all deny.
func (c *PermissionClient) HasProjectAdmin(ctx context.Context, principal, projectKey string) bool {
	key := principal + "\x00" + projectKey
	result, _, _ := c.group.Do(key, func() (interface{}, error) {
		return c.lookup(ctx, principal, projectKey), nil
	})
	return result.(bool)
}

func (c *PermissionClient) lookup(ctx context.Context, principal, projectKey string) bool {
	endpoint := fmt.Sprintf("%s/permissions?principal=%s&project=%s",
		c.baseURL, url.QueryEscape(principal), url.QueryEscape(projectKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		slog.Warn("Permission request build failed", "project", projectKey, "error", err)
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("Permission service unreachable, denying", "project", projectKey, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slog.Warn("Permission service returned non-2xx, denying",
			"project", projectKey, "status", resp.StatusCode)
		return false
	}

	var body permissionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		slog.Warn("Permission response undecodable, denying", "project", projectKey, "error", err)
		return false
	}

	for _, p := range body.Permissions {
		if grantsProjectAdmin(p) {
			return true
		}
	}
	return false
}
