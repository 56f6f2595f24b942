package service

// CreateRequest holds parameters for creating a template.
type CreateRequest struct {
	Name       string
	Summary    string
	Content    string
	Projects   []string
	IssueTypes []string
	Active     bool
}

// UpdateRequest holds parameters for updating a template's display fields.
// Nil fields are left unchanged.
type UpdateRequest struct {
	Name    *string
	Summary *string
	Content *string
}

// AssignRequest holds parameters for reassigning a template's scope. Nil
// axes are left unchanged; a non-nil empty slice sets the wildcard.
type AssignRequest struct {
	Projects   *[]string
	IssueTypes *[]string
}

// Prefill is the suggestion computed for the issue-create form. ApplySummary
// and ApplyDescription are true only when the template supplies text and the
// caller's current field is blank.
type Prefill struct {
	Summary          string `json:"summary,omitempty"`
	Description      string `json:"description,omitempty"`
	ApplySummary     bool   `json:"apply_summary"`
	ApplyDescription bool   `json:"apply_description"`
}

// ProjectCount is one bucket of ListFilterProjects: a concrete project key,
// or WildcardBucket for templates with no project scope.
type ProjectCount struct {
	ProjectKey string `json:"project_key"`
	Count      int    `json:"count"`
}

// WildcardBucket is the ListFilterProjects bucket for templates whose project
// axis is empty, and the FilterByProject selector for the same set.
const WildcardBucket = "*"
