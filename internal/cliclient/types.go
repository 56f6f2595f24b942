package cliclient

import "time"

// Template mirrors the server's template representation.
type Template struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Summary    string    `json:"summary"`
	Content    string    `json:"content"`
	Projects   []string  `json:"assigned_projects"`
	IssueTypes []string  `json:"assigned_issue_types"`
	Active     bool      `json:"active"`
	Deleted    bool      `json:"deleted"`
	Owner      string    `json:"owner,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TemplatePage is a paginated template listing.
type TemplatePage struct {
	Templates []Template `json:"templates"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	Limit     int        `json:"limit"`
}

// ActivationResult is returned by activation and assignment calls.
type ActivationResult struct {
	Template    Template `json:"template"`
	Deactivated []string `json:"deactivated"`
}

// GlobalConfig mirrors the server's global configuration.
type GlobalConfig struct {
	AllowAllUsers bool     `json:"allow_all_users"`
	Admins        []string `json:"admins"`
}

// Prefill mirrors the server's prefill suggestion.
type Prefill struct {
	Summary          string `json:"summary,omitempty"`
	Description      string `json:"description,omitempty"`
	ApplySummary     bool   `json:"apply_summary"`
	ApplyDescription bool   `json:"apply_description"`
}

// PrefillResult is the prefill endpoint's response.
type PrefillResult struct {
	Matched      bool     `json:"matched"`
	TemplateID   string   `json:"template_id,omitempty"`
	TemplateName string   `json:"template_name,omitempty"`
	Prefill      *Prefill `json:"prefill,omitempty"`
}
