package domain

import "time"

// Session is the authenticated identity held for one portal client.
// Token absence means unauthenticated; the session is destroyed on logout or
// when the token's expiry claim is found to be in the past.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// Authenticated reports whether the session carries a bearer credential.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}
