package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/infrastructure/memory"
)

const testSecret = "test-secret"

func runAuth(t *testing.T, store *memory.SessionStore, header string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/student/opportunities", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Auth(testSecret, store)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec, c
}

func TestAuthInjectsClaims(t *testing.T) {
	store := memory.NewSessionStore()
	tok, err := MintSession(testSecret, "sess-1", "u1", domain.RoleStudent, time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	rec, c := runAuth(t, store, "Bearer "+tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got, _ := c.Get(CtxSessionKey).(string); got != "sess-1" {
		t.Errorf("session key = %q", got)
	}
	if got, _ := c.Get(CtxRole).(string); got != domain.RoleStudent {
		t.Errorf("role = %q", got)
	}
}

func TestAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	store := memory.NewSessionStore()
	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
		rec, _ := runAuth(t, store, header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d", header, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"redirect":"/login"`) {
			t.Errorf("header %q: body = %s", header, rec.Body.String())
		}
	}
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	store := memory.NewSessionStore()
	tok, _ := MintSession("other-secret", "sess-1", "u1", domain.RoleStudent, time.Hour)
	rec, _ := runAuth(t, store, "Bearer "+tok)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestAuthForgedTokenLeavesStoredSession(t *testing.T) {
	store := memory.NewSessionStore()
	store.Write(context.Background(), "sess-1", &domain.Session{
		Token: "upstream-token",
		User:  domain.User{ID: "u1", Role: domain.RoleStudent},
	})
	// Signed with the wrong secret but naming a live session: rejecting it
	// must not log that session out.
	tok, _ := MintSession("other-secret", "sess-1", "u1", domain.RoleStudent, time.Hour)

	rec, _ := runAuth(t, store, "Bearer "+tok)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	sess, _ := store.Read(context.Background(), "sess-1")
	if !sess.Authenticated() {
		t.Error("forged token must not clear another client's session")
	}
}

func TestAuthExpiredTokenClearsStoredSession(t *testing.T) {
	store := memory.NewSessionStore()
	store.Write(context.Background(), "sess-1", &domain.Session{
		Token: "upstream-token",
		User:  domain.User{ID: "u1", Role: domain.RoleStudent},
	})
	tok, _ := MintSession(testSecret, "sess-1", "u1", domain.RoleStudent, -time.Minute)

	rec, _ := runAuth(t, store, "Bearer "+tok)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	sess, _ := store.Read(context.Background(), "sess-1")
	if sess.Authenticated() {
		t.Error("expired token should have cleared the stored session")
	}
}
