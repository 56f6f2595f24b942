package authz

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func permissionServer(t *testing.T, handler http.HandlerFunc) *PermissionClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewPermissionClient(srv.URL, 2*time.Second)
}

func TestHasProjectAdmin_GrantedByKey(t *testing.T) {
	client := permissionServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("project"); got != "PROJ" {
			t.Errorf("project query = %q, want PROJ", got)
		}
		fmt.Fprint(w, `{"permissions":[{"key":"PROJECT_ADMIN","name":"Project administration"}]}`)
	})

	if !client.HasProjectAdmin(context.Background(), "alice", "PROJ") {
		t.Error("PROJECT_ADMIN key should grant project admin")
	}
}

func TestHasProjectAdmin_GrantedByName(t *testing.T) {
	client := permissionServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"permissions":[{"key":"CUSTOM_ROLE","name":"Space Admin"}]}`)
	})

	if !client.HasProjectAdmin(context.Background(), "alice", "PROJ") {
		t.Error("a permission named like an admin role should grant project admin")
	}
}

func TestHasProjectAdmin_DeniedWithoutAdminPermission(t *testing.T) {
	client := permissionServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"permissions":[{"key":"BROWSE","name":"Browse project"}]}`)
	})

	if client.HasProjectAdmin(context.Background(), "alice", "PROJ") {
		t.Error("plain permissions must not grant project admin")
	}
}

func TestHasProjectAdmin_FailClosed(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-2xx", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"garbage body", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "not json at all")
		}},
		{"empty permissions", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"permissions":[]}`)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := permissionServer(t, tc.handler)
			if client.HasProjectAdmin(context.Background(), "alice", "PROJ") {
				t.Error("lookup failure must deny")
			}
		})
	}
}

func TestHasProjectAdmin_UnreachableServiceDenies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewPermissionClient(srv.URL, 500*time.Millisecond)
	srv.Close()

	if client.HasProjectAdmin(context.Background(), "alice", "PROJ") {
		t.Error("unreachable permission service must deny")
	}
}
