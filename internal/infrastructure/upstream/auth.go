package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/campusconnect/portal/internal/core/ports"
)

// Health probes GET /api/health under the short probe budget.
func (c *Client) Health(ctx context.Context) (ports.HealthStatus, error) {
	return c.health(ctx, healthTimeout)
}

// HealthDiagnostic probes the same endpoint under the looser diagnostic
// budget, used to tell a slow backend from a dead one.
func (c *Client) HealthDiagnostic(ctx context.Context) (ports.HealthStatus, error) {
	return c.health(ctx, diagnosticTimeout)
}

func (c *Client) health(ctx context.Context, timeout time.Duration) (ports.HealthStatus, error) {
	raw, err := c.do(ctx, timeout, http.MethodGet, "/api/health", "", nil, "")
	if err != nil {
		return ports.HealthStatus{}, err
	}
	var payload struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := decode(raw, &payload); err != nil {
		return ports.HealthStatus{}, err
	}
	return ports.HealthStatus{Status: payload.Status, Message: payload.Message}, nil
}

// Login exchanges credentials against POST /api/auth/login.
func (c *Client) Login(ctx context.Context, in ports.LoginInput) (ports.AuthResult, error) {
	payload := map[string]any{
		"identifier": in.Identifier,
		"password":   in.Password,
		"remember":   in.Remember,
	}
	raw, err := c.doJSON(ctx, crudTimeout, http.MethodPost, "/api/auth/login", "", payload)
	if err != nil {
		return ports.AuthResult{}, err
	}
	var auth rawAuth
	if err := decode(raw, &auth); err != nil {
		return ports.AuthResult{}, err
	}
	return auth.normalize()
}

// LegacyLogin exchanges credentials against the form-encoded OAuth token
// endpoint still exposed by older backend deployments.
func (c *Client) LegacyLogin(ctx context.Context, username, password string) (ports.AuthResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	form.Set("grant_type", "password")
	raw, err := c.do(ctx, crudTimeout, http.MethodPost, "/oauth/token",
		"", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return ports.AuthResult{}, err
	}
	var auth rawAuth
	if err := decode(raw, &auth); err != nil {
		return ports.AuthResult{}, err
	}
	return auth.normalize()
}

// Signup registers a new account against POST /api/auth/signup.
func (c *Client) Signup(ctx context.Context, in ports.SignupInput) (ports.AuthResult, error) {
	payload := map[string]any{
		"role":             in.Role,
		"full_name":        in.FullName,
		"university_name":  in.UniversityName,
		"mobile_number":    in.MobileNumber,
		"email":            in.Email,
		"department":       in.Department,
		"password":         in.Password,
		"confirm_password": in.ConfirmPassword,
	}
	raw, err := c.doJSON(ctx, crudTimeout, http.MethodPost, "/api/auth/signup", "", payload)
	if err != nil {
		return ports.AuthResult{}, err
	}
	var auth rawAuth
	if err := decode(raw, &auth); err != nil {
		return ports.AuthResult{}, err
	}
	return auth.normalize()
}
