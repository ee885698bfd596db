package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/campusconnect/portal/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxSessionKey = "session_key"
	CtxUserID     = "user_id"
	CtxRole       = "role"
)

// MintSession issues the gateway's own HS256 token binding a client to its
// stored session. The upstream bearer never leaves the gateway; clients only
// ever hold this wrapper.
func MintSession(secret, sessionKey, userID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":  sessionKey,
		"sub":  userID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})
	return tok.SignedString([]byte(secret))
}

// Auth validates the gateway token and injects its claims into context. An
// expired token also clears the stored session so the dead credential cannot
// be replayed against the store.
func Auth(secret string, store ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorized(c, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthorized(c, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !tkn.Valid {
				// Only a genuinely expired token (signature checked out)
				// takes its stored session with it; a forged one must not
				// be able to force-logout someone else's session.
				if errors.Is(err, jwt.ErrTokenExpired) {
					clearExpired(c, store, parts[1])
				}
				return unauthorized(c, "invalid or expired token")
			}

			sid, _ := claims["sid"].(string)
			if sid == "" {
				return unauthorized(c, "token missing session identity")
			}

			c.Set(CtxSessionKey, sid)
			c.Set(CtxUserID, claims["sub"])
			c.Set(CtxRole, claims["role"])

			return next(c)
		}
	}
}

// BearerRole verifies a request's gateway token without requiring one and
// returns the role claim. Used by the auth routes to bounce already
// signed-in clients to their dashboard instead of re-authenticating them.
func BearerRole(secret string, r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", false
	}
	role, _ := claims["role"].(string)
	return role, role != ""
}

// clearExpired drops the stored session referenced by a rejected token, when
// the sid claim is still readable.
func clearExpired(c echo.Context, store ports.SessionStore, raw string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return
	}
	if sid, _ := claims["sid"].(string); sid != "" {
		_ = store.Clear(c.Request().Context(), sid)
	}
}

// unauthorized is the guard rejection shape: a 401 that tells the client
// where to go instead of a bare forbidden page.
func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"error":    msg,
		"redirect": "/login",
	})
}
