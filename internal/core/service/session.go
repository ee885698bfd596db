package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
)

// requireSession loads the session for key and fails with the authentication
// errors when it is absent or its credential has lapsed. An expired token
// clears the stored session so the next read fails fast.
func requireSession(ctx context.Context, store ports.SessionStore, key string) (*domain.Session, error) {
	sess, err := store.Read(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("session read: %w", err)
	}
	if !sess.Authenticated() {
		return nil, domain.ErrUnauthenticated
	}
	if tokenExpired(sess.Token, time.Now()) {
		_ = store.Clear(ctx, key)
		return nil, domain.ErrSessionExpired
	}
	return sess, nil
}

// tokenExpired decodes the token's exp claim without verifying the signature.
// The upstream backend is the verifier of record; this check only keeps the
// gateway from holding credentials it already knows are dead. Tokens without
// a readable exp claim are given the benefit of the doubt.
func tokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
