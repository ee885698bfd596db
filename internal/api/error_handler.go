package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campusconnect/portal/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Attaches the login redirect to authentication failures.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		resp := errorResponse{Error: msg}
		if code == http.StatusUnauthorized {
			resp.Redirect = "/login"
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUnauthenticated),
		errors.Is(err, domain.ErrInvalidSession):
		return http.StatusUnauthorized, "please log in to continue"
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, "session expired, please log in again"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrAccountLocked):
		return http.StatusLocked, "account locked, try again later"
	case errors.Is(err, domain.ErrAccountNotActivated):
		return http.StatusForbidden, "account pending activation"
	case errors.Is(err, domain.ErrDuplicateAccount):
		return http.StatusConflict, "an account with this email already exists"
	case errors.Is(err, domain.ErrRoleMismatch):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrFieldValidation),
		errors.Is(err, domain.ErrTermsNotAccepted),
		errors.Is(err, domain.ErrWeakPassword):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "rate limit exceeded, please wait a moment before sending another message"
	case errors.Is(err, domain.ErrFileTooLarge),
		errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrFeedbackAlreadySent):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUnknownConversation):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrIllegalTransition):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout, "the campus backend took too long to respond"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "the campus backend is unreachable"
	case errors.Is(err, domain.ErrMalformedPayload):
		return http.StatusBadGateway, "the campus backend sent an unrecognized response"
	}

	// A status the auth mapping did not claim passes through with its text.
	var se *domain.UpstreamStatusError
	if errors.As(err, &se) {
		msg := se.Message
		if msg == "" {
			msg = "request rejected by the campus backend"
		}
		return se.Code, msg
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
