package ports

import (
	"context"
	"io"
	"time"

	"github.com/campusconnect/portal/internal/core/domain"
)

// LoginForm is the auth controller's login submission.
type LoginForm struct {
	Identifier string
	Password   string
	Remember   bool
}

// SignupForm is the two-step signup wizard's accumulated state.
type SignupForm struct {
	Role            string
	Name            string
	Email           string
	Mobile          string
	University      string
	Department      string
	Password        string
	ConfirmPassword string
	Terms           bool
}

// AuthOutcome is a successful authentication: session persisted, landing
// route resolved by role, attempt counter for the identifier.
type AuthOutcome struct {
	Session  domain.Session
	Redirect string
	Attempts int
}

// PasswordStrength is the 5-factor strength report.
type PasswordStrength struct {
	Score    int
	Length   bool
	Upper    bool
	Lower    bool
	Digit    bool
	Special  bool
	Label    string
}

// AuthService is the login/signup flow controller.
type AuthService interface {
	Login(ctx context.Context, sessionKey string, form LoginForm) (AuthOutcome, error)
	Signup(ctx context.Context, sessionKey string, form SignupForm) (AuthOutcome, error)
	Logout(ctx context.Context, sessionKey string) error
	FailedAttempts(identifier string) int
	RememberedIdentifier(ctx context.Context, sessionKey string) string
}

// ProbeStatus is the prober's tri-state connectivity report.
type ProbeStatus string

const (
	ProbeConnected    ProbeStatus = "connected"
	ProbeConnecting   ProbeStatus = "connecting"
	ProbeDisconnected ProbeStatus = "disconnected"
)

// ProbeSnapshot is what subscribers observe.
type ProbeSnapshot struct {
	Status      ProbeStatus
	Message     string
	LastChecked time.Time
	Retries     int
}

// Prober reports upstream connectivity.
type Prober interface {
	Check(ctx context.Context) ProbeSnapshot
	CheckDiagnostic(ctx context.Context) ProbeSnapshot
	Status() ProbeSnapshot
	Run(ctx context.Context)
}

// ConversationView is the widget's visible state in one snapshot.
type ConversationView struct {
	Messages      []domain.ChatMessage
	UploadedFiles []domain.UploadedFile
	Suggestion    string
	Greeting      string
	PrivacyNotice string
	Remaining     int
}

// UploadRequest is a widget-side document upload before local validation.
type UploadRequest struct {
	Filename    string
	ContentType string
	Size        int64
	File        io.Reader
}

// Assistant is the chat-widget session service.
type Assistant interface {
	Open(ctx context.Context, sessionKey string) (ConversationView, error)
	Send(ctx context.Context, sessionKey, text string) (ConversationView, error)
	Upload(ctx context.Context, sessionKey string, req UploadRequest) (ConversationView, error)
	Transcribe(ctx context.Context, sessionKey, filename string, audio io.Reader) (string, error)
	Synthesize(ctx context.Context, sessionKey, messageID string) (string, error)
	Feedback(ctx context.Context, sessionKey, messageID string, kind domain.FeedbackType) error
	Clear(ctx context.Context, sessionKey string) error
}
