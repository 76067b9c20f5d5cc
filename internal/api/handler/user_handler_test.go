package handler

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/codefolio/portfolio-api/internal/core/domain"
)

func TestUserHandler_UpdateRole(t *testing.T) {
	profiles := &stubProfiles{roles: map[string]domain.Role{}}
	h := NewUserHandler(profiles)

	userID := "3f6f3e5e-9a41-4c1d-9f5e-2b7a8c4d1e0f"
	rec, c := newBlogContext(t, http.MethodPut, "/api/admin/users/role",
		`{"user_id":"`+userID+`","role":"instructor"}`)

	if err := h.UpdateRole(c); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if profiles.roles[userID] != domain.RoleInstructor {
		t.Fatalf("role not persisted: %v", profiles.roles)
	}
}

func TestUserHandler_UpdateRoleValidation(t *testing.T) {
	h := NewUserHandler(&stubProfiles{roles: map[string]domain.Role{}})

	cases := []string{
		`{"role":"admin"}`,
		`{"user_id":"not-a-uuid","role":"admin"}`,
		`{"user_id":"3f6f3e5e-9a41-4c1d-9f5e-2b7a8c4d1e0f","role":"superuser"}`,
		`{"user_id":"3f6f3e5e-9a41-4c1d-9f5e-2b7a8c4d1e0f"}`,
	}
	for _, body := range cases {
		_, c := newBlogContext(t, http.MethodPut, "/api/admin/users/role", body)
		err := h.UpdateRole(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusBadRequest {
			t.Fatalf("body %s: got %v, want 400", body, err)
		}
	}
}
