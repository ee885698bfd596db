package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/campusconnect/portal/internal/api/metrics"
	"github.com/campusconnect/portal/internal/api/middleware"
	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
	"github.com/campusconnect/portal/internal/core/service"
)

// gatewayTokenTTL matches the stored session's lifetime.
const gatewayTokenTTL = 24 * time.Hour

type AuthHandler struct {
	authService ports.AuthService
	jwtSecret   string
}

func NewAuthHandler(authService ports.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{authService: authService, jwtSecret: jwtSecret}
}

// Login exchanges portal credentials for a gateway token and the role's
// landing route.
func (h *AuthHandler) Login(c echo.Context) error {
	// A client that still holds a live token belongs on its dashboard.
	if role, ok := middleware.BearerRole(h.jwtSecret, c.Request()); ok {
		return c.JSON(http.StatusOK, map[string]string{"redirect": domain.LandingRoute(role)})
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("validation").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sessionKey := uuid.NewString()
	out, err := h.authService.Login(c.Request().Context(), sessionKey, ports.LoginForm{
		Identifier: req.Identifier,
		Password:   req.Password,
		Remember:   req.Remember,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return err
	}

	token, err := middleware.MintSession(h.jwtSecret, sessionKey, out.Session.User.ID, out.Session.User.Role, gatewayTokenTTL)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{
		Token:    token,
		User:     out.Session.User,
		Redirect: out.Redirect,
	})
}

// Signup registers an account and signs the new user straight in.
func (h *AuthHandler) Signup(c echo.Context) error {
	if role, ok := middleware.BearerRole(h.jwtSecret, c.Request()); ok {
		return c.JSON(http.StatusOK, map[string]string{"redirect": domain.LandingRoute(role)})
	}

	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues("validation").Inc()
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sessionKey := uuid.NewString()
	out, err := h.authService.Signup(c.Request().Context(), sessionKey, ports.SignupForm{
		Role:            req.Role,
		Name:            req.FullName,
		Email:           req.Email,
		Mobile:          req.MobileNumber,
		University:      req.UniversityName,
		Department:      req.Department,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Terms:           req.Terms,
	})
	if err != nil {
		metrics.SignupsTotal.WithLabelValues(signupOutcome(err)).Inc()
		return err
	}

	token, err := middleware.MintSession(h.jwtSecret, sessionKey, out.Session.User.ID, out.Session.User.Role, gatewayTokenTTL)
	if err != nil {
		return err
	}

	metrics.SignupsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, authResponse{
		Token:    token,
		User:     out.Session.User,
		Redirect: out.Redirect,
	})
}

// Logout destroys the stored session referenced by the gateway token.
func (h *AuthHandler) Logout(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), key); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"redirect": "/login"})
}

// Remembered returns the identifier kept by a remember-me login for form
// prefill. The client passes the session key it held before logging out.
func (h *AuthHandler) Remembered(c echo.Context) error {
	key := c.QueryParam("session")
	if key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "session is required")
	}
	identifier := h.authService.RememberedIdentifier(c.Request().Context(), key)
	return c.JSON(http.StatusOK, map[string]string{"identifier": identifier})
}

// Attempts reports the consecutive failed-login count for an identifier, for
// the form's warning banner. The server enforces the actual lockout.
func (h *AuthHandler) Attempts(c echo.Context) error {
	identifier := c.QueryParam("identifier")
	if identifier == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "identifier is required")
	}
	return c.JSON(http.StatusOK, map[string]int{"attempts": h.authService.FailedAttempts(identifier)})
}

// PasswordStrength scores a candidate password for the signup meter. Nothing
// is stored or sent upstream.
func (h *AuthHandler) PasswordStrength(c echo.Context) error {
	var req strengthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s := service.Strength(req.Password)
	return c.JSON(http.StatusOK, strengthResponse{
		Score:   s.Score,
		Label:   s.Label,
		Length:  s.Length,
		Upper:   s.Upper,
		Lower:   s.Lower,
		Digit:   s.Digit,
		Special: s.Special,
	})
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountLocked):
		return "locked"
	case errors.Is(err, domain.ErrAccountNotActivated):
		return "not_activated"
	case errors.Is(err, domain.ErrMissingFields):
		return "validation"
	default:
		return "error"
	}
}

func signupOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateAccount):
		return "duplicate"
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrFieldValidation),
		errors.Is(err, domain.ErrTermsNotAccepted),
		errors.Is(err, domain.ErrWeakPassword):
		return "validation"
	default:
		return "error"
	}
}
