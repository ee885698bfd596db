package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusconnect/portal/internal/api/middleware"
	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
)

type stubAuthService struct {
	loginFn      func(ctx context.Context, sessionKey string, form ports.LoginForm) (ports.AuthOutcome, error)
	signupFn     func(ctx context.Context, sessionKey string, form ports.SignupForm) (ports.AuthOutcome, error)
	logoutFn     func(ctx context.Context, sessionKey string) error
	attemptsFn   func(identifier string) int
	rememberedFn func(ctx context.Context, sessionKey string) string
}

func (s *stubAuthService) Login(ctx context.Context, sessionKey string, form ports.LoginForm) (ports.AuthOutcome, error) {
	return s.loginFn(ctx, sessionKey, form)
}

func (s *stubAuthService) Signup(ctx context.Context, sessionKey string, form ports.SignupForm) (ports.AuthOutcome, error) {
	return s.signupFn(ctx, sessionKey, form)
}

func (s *stubAuthService) Logout(ctx context.Context, sessionKey string) error {
	return s.logoutFn(ctx, sessionKey)
}

func (s *stubAuthService) FailedAttempts(identifier string) int {
	return s.attemptsFn(identifier)
}

func (s *stubAuthService) RememberedIdentifier(ctx context.Context, sessionKey string) string {
	return s.rememberedFn(ctx, sessionKey)
}

func newAuthContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, sessionKey string, form ports.LoginForm) (ports.AuthOutcome, error) {
			if sessionKey == "" {
				t.Error("handler should mint a session key")
			}
			if form.Identifier != "ada@uni.edu" || !form.Remember {
				t.Errorf("form = %+v", form)
			}
			return ports.AuthOutcome{
				Session: domain.Session{
					Token: "upstream-token",
					User:  domain.User{ID: "u1", Name: "Ada", Role: domain.RoleStudent},
				},
				Redirect: "/student",
			}, nil
		},
	}
	handler := NewAuthHandler(stub, "secret")

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/login",
		`{"identifier":"ada@uni.edu","password":"pw","remember":true}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["redirect"] != "/student" {
		t.Errorf("redirect = %v", resp["redirect"])
	}
	token, _ := resp["token"].(string)
	if token == "" || token == "upstream-token" {
		t.Errorf("response should carry a gateway token, got %q", token)
	}
}

func TestAuthHandler_Login_SignedInClientBouncedToDashboard(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, ports.LoginForm) (ports.AuthOutcome, error) {
			t.Fatal("service should not be called")
			return ports.AuthOutcome{}, nil
		},
	}
	handler := NewAuthHandler(stub, "secret")

	token, err := middleware.MintSession("secret", "sess-1", "u1", domain.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/login",
		`{"identifier":"ada@uni.edu","password":"pw"}`)
	c.Request().Header.Set(echo.HeaderAuthorization, "Bearer "+token)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"redirect":"/admin"`) {
		t.Errorf("code = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_Login_MissingFieldsRejectedBeforeService(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, ports.LoginForm) (ports.AuthOutcome, error) {
			t.Fatal("service should not be called")
			return ports.AuthOutcome{}, nil
		},
	}
	handler := NewAuthHandler(stub, "secret")

	c, _ := newAuthContext(t, http.MethodPost, "/api/auth/login", `{"identifier":"ada@uni.edu"}`)
	err := handler.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v", err)
	}
}

func TestAuthHandler_Signup_Created(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(_ context.Context, _ string, form ports.SignupForm) (ports.AuthOutcome, error) {
			if form.Role != domain.RoleTeacher || form.Name != "Grace Hopper" {
				t.Errorf("form = %+v", form)
			}
			return ports.AuthOutcome{
				Session: domain.Session{
					Token: "upstream-token",
					User:  domain.User{ID: "u2", Role: domain.RoleTeacher},
				},
				Redirect: "/teacher",
			}, nil
		},
	}
	handler := NewAuthHandler(stub, "secret")

	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/signup",
		`{"role":"teacher","fullName":"Grace Hopper","email":"grace@uni.edu","mobileNumber":"+8801712345678","universityName":"Example University","password":"Str0ng!pass","confirmPassword":"Str0ng!pass","terms":true}`)
	if err := handler.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_Signup_PasswordMismatchRejected(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, "secret")
	c, _ := newAuthContext(t, http.MethodPost, "/api/auth/signup",
		`{"role":"student","fullName":"Ada","email":"ada@uni.edu","mobileNumber":"+8801712345678","universityName":"Example University","password":"Str0ng!pass","confirmPassword":"Different1!","terms":true}`)
	err := handler.Signup(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v", err)
	}
}

func TestAuthHandler_PasswordStrength(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, "secret")
	c, rec := newAuthContext(t, http.MethodPost, "/api/auth/password/strength", `{"password":"Abcdef1!"}`)
	if err := handler.PasswordStrength(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp strengthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Score != 5 || resp.Label != "excellent" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestAuthHandler_Attempts(t *testing.T) {
	stub := &stubAuthService{attemptsFn: func(identifier string) int {
		if identifier != "ada@uni.edu" {
			t.Errorf("identifier = %q", identifier)
		}
		return 2
	}}
	handler := NewAuthHandler(stub, "secret")

	c, rec := newAuthContext(t, http.MethodGet, "/api/auth/attempts?identifier=ada%40uni.edu", "")
	if err := handler.Attempts(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"attempts":2`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
