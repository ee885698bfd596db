package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/campusconnect/portal/internal/core/domain"
)

func runGuard(t *testing.T, role string, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set(CtxRole, role)
	}

	h := RoleGuard(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func TestRoleGuardAllowsMatchingRole(t *testing.T) {
	rec := runGuard(t, domain.RoleAdmin, domain.RoleAdmin)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestRoleGuardRedirectsMismatchToLogin(t *testing.T) {
	rec := runGuard(t, domain.RoleStudent, domain.RoleAdmin)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 rather than 403", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"redirect":"/login"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRoleGuardRejectsMissingRole(t *testing.T) {
	rec := runGuard(t, "", domain.RoleAdmin)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", rec.Code)
	}
}
