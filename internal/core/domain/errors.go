package domain

import (
	"errors"
	"fmt"
)

// Authentication errors. All of them force a re-login prompt and clear the
// stored credential at the point of detection.
var (
	ErrUnauthenticated    = errors.New("missing authentication")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidSession     = errors.New("invalid session")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked")
	ErrAccountNotActivated = errors.New("account not activated")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrRoleMismatch       = errors.New("role not permitted for this route")
)

// Client-side validation errors. These block submission locally and are never
// sent upstream.
var (
	ErrMissingFields    = errors.New("please fill in all required fields")
	ErrFieldValidation  = errors.New("validation failed")
	ErrTermsNotAccepted = errors.New("terms and conditions not accepted")
	ErrWeakPassword     = errors.New("password is too weak")
)

// Assistant guard errors.
var (
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrFileTooLarge        = errors.New("file size must be less than 10MB")
	ErrUnsupportedFileType = errors.New("only PDF files are supported")
	ErrFeedbackAlreadySent = errors.New("feedback already recorded for message")
	ErrUnknownConversation = errors.New("unknown conversation")
)

// Upstream transport errors.
var (
	ErrUpstreamTimeout     = errors.New("upstream request timed out")
	ErrUpstreamUnavailable = errors.New("upstream unreachable")
	ErrMalformedPayload    = errors.New("unrecognized upstream payload shape")
)

// Misc.
var (
	ErrNotFound         = errors.New("not found")
	ErrIllegalTransition = errors.New("action not legal for current status")
)

// UpstreamStatusError carries a non-2xx upstream response that has no more
// specific mapping, preserving any server-supplied text.
type UpstreamStatusError struct {
	Code    int
	Message string
}

func (e *UpstreamStatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("upstream returned %d", e.Code)
}
