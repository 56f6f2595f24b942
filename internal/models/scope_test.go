package models

import "testing"

func TestAxisOverlaps_Wildcard(t *testing.T) {
	wildcard := Axis{}
	restricted := Axis{"PROJ"}

	if !wildcard.Overlaps(restricted) {
		t.Error("wildcard should overlap a restricted axis")
	}
	if !restricted.Overlaps(wildcard) {
		t.Error("restricted axis should overlap a wildcard")
	}
	if !wildcard.Overlaps(Axis{}) {
		t.Error("wildcard should overlap another wildcard")
	}
}

func TestAxisOverlaps_Symmetric(t *testing.T) {
	cases := []struct {
		name string
		a, b Axis
		want bool
	}{
		{"disjoint", Axis{"A"}, Axis{"B"}, false},
		{"shared element", Axis{"A", "B"}, Axis{"B", "C"}, true},
		{"wildcard vs set", Axis{}, Axis{"X"}, true},
		{"identical", Axis{"A"}, Axis{"A"}, true},
	}
	for _, tc := range cases {
		if got := tc.a.Overlaps(tc.b); got != tc.want {
			t.Errorf("%s: a.Overlaps(b) = %v, want %v", tc.name, got, tc.want)
		}
		if got := tc.b.Overlaps(tc.a); got != tc.want {
			t.Errorf("%s: overlap is not symmetric", tc.name)
		}
	}
}

func TestScopeOverlaps_RequiresBothAxes(t *testing.T) {
	a := Scope{Projects: Axis{"PROJ"}, IssueTypes: Axis{"Bug"}}
	b := Scope{Projects: Axis{"PROJ"}, IssueTypes: Axis{"Task"}}

	if a.Overlaps(b) {
		t.Error("scopes sharing only the project axis should not overlap")
	}

	c := Scope{Projects: Axis{"PROJ"}, IssueTypes: Axis{}}
	if !a.Overlaps(c) {
		t.Error("wildcard issue-type axis should make the scopes overlap")
	}
}

func TestScopeMatches(t *testing.T) {
	wildcard := Scope{}
	if !wildcard.Matches("PROJ", "Bug") {
		t.Error("wildcard scope should match any pair")
	}
	if !wildcard.Matches("PROJ", "") {
		t.Error("wildcard scope should match a pair with no issue type")
	}
	if wildcard.Matches("", "Bug") {
		t.Error("empty project key should never match")
	}

	restricted := Scope{Projects: Axis{"PROJ"}, IssueTypes: Axis{"Bug"}}
	if !restricted.Matches("PROJ", "Bug") {
		t.Error("exact pair should match")
	}
	if restricted.Matches("OTHER", "Bug") {
		t.Error("unlisted project should not match")
	}
	if restricted.Matches("PROJ", "Task") {
		t.Error("unlisted issue type should not match")
	}
}

func TestScopeMatches_MissingIssueTypeNeverSatisfiesRestrictedAxis(t *testing.T) {
	restricted := Scope{Projects: Axis{}, IssueTypes: Axis{"Bug"}}
	if restricted.Matches("PROJ", "") {
		t.Error("missing issue type must not satisfy a restricted issue-type axis")
	}
}
