package models

import "time"

// Template is a reusable summary/description preset that can be assigned to
// projects and issue types and prefilled into the issue-create form.
type Template struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
	Content string `json:"content"`
	Scope
	Active    bool      `json:"active"`
	Deleted   bool      `json:"deleted"`
	Owner     string    `json:"owner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
