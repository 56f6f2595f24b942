package models

// GlobalConfig governs default authorization for template management.
type GlobalConfig struct {
	// AllowAllUsers lets any authenticated principal manage templates.
	AllowAllUsers bool `json:"allow_all_users"`
	// Admins are principal ids that may always manage templates and
	// change this config.
	Admins []string `json:"admins"`
}

// ProjectSettings records whether a project opts into global templates.
type ProjectSettings struct {
	Enabled bool `json:"enabled"`
}
