package models

// Axis is the set of keys a template is assigned to on one scope dimension
// (project keys or issue type names). An empty Axis is a wildcard covering
// every value on that dimension.
type Axis []string

// IsWildcard reports whether the axis covers all values.
func (a Axis) IsWildcard() bool { return len(a) == 0 }

// Contains reports whether the axis explicitly lists v.
func (a Axis) Contains(v string) bool {
	for _, s := range a {
		if s == v {
			return true
		}
	}
	return false
}

// Overlaps reports whether two axes can cover a common value. A wildcard
// overlaps everything, including another wildcard.
func (a Axis) Overlaps(b Axis) bool {
	if a.IsWildcard() || b.IsWildcard() {
		return true
	}
	for _, s := range a {
		if b.Contains(s) {
			return true
		}
	}
	return false
}

// Scope is the (projects, issue types) pair a template applies to.
type Scope struct {
	Projects   Axis `json:"assigned_projects"`
	IssueTypes Axis `json:"assigned_issue_types"`
}

// Overlaps reports whether two scopes can cover a common (project, issue type)
// pair. Overlap is decided per axis; a full overlap requires both.
func (s Scope) Overlaps(o Scope) bool {
	return s.Projects.Overlaps(o.Projects) && s.IssueTypes.Overlaps(o.IssueTypes)
}

// Matches reports whether the scope covers the concrete (projectKey,
// issueType) pair. projectKey must be non-empty. A missing issueType only
// satisfies a wildcard issue-type axis, never a restricted one.
func (s Scope) Matches(projectKey, issueType string) bool {
	if projectKey == "" {
		return false
	}
	if !s.Projects.IsWildcard() && !s.Projects.Contains(projectKey) {
		return false
	}
	if s.IssueTypes.IsWildcard() {
		return true
	}
	return issueType != "" && s.IssueTypes.Contains(issueType)
}
