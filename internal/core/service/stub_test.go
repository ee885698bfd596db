package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
	"github.com/campusconnect/portal/internal/infrastructure/memory"
)

// stubUpstream fakes the backend. Each call delegates to the corresponding
// function field when set and fails the test otherwise, so a test only wires
// what it expects to be called.
type stubUpstream struct {
	t *testing.T

	health           func(ctx context.Context) (ports.HealthStatus, error)
	login            func(in ports.LoginInput) (ports.AuthResult, error)
	legacyLogin      func(username, password string) (ports.AuthResult, error)
	signup           func(in ports.SignupInput) (ports.AuthResult, error)
	listUsers        func(token string) ([]domain.User, error)
	updateUser       func(token, id string, in ports.UpdateProfileInput) (domain.User, error)
	updateUserStatus func(token, id string, status domain.UserStatus) error
	deleteUser       func(token, id string) error
	listOpps         func(token, teacherID string) ([]domain.Opportunity, error)
	createOpp        func(token string, in ports.CreateOpportunityInput) (domain.Opportunity, error)
	listApps         func(token string, f ports.ApplicationFilter) ([]domain.Application, error)
	submitApp        func(token string, in ports.SubmitApplicationInput) (domain.Application, error)
	deleteApp        func(token, id string) error
	updateAppStatus  func(token, id string, status domain.ApplicationStatus) error
	listCollabs      func(token string, f ports.ApplicationFilter) ([]domain.Collaboration, error)
	createCollab     func(token string, in ports.CreateCollaborationInput) (domain.Collaboration, error)
	listPartnerships func(token, orgID string) ([]domain.Partnership, error)
	listEvents       func(token, orgID string) ([]domain.Event, error)
	adminStats       func(token string) (domain.AdminStats, error)
	listReports      func(token string) ([]domain.Report, error)
	settings         func(token string) (domain.PortalSettings, error)
	updateSettings   func(token string, s domain.PortalSettings) error
	analytics        func(token string) (domain.AssistantAnalytics, error)
	chat             func(token string, in ports.ChatInput) (ports.ChatResult, error)
	uploadDocument   func(token string, in ports.UploadInput) (domain.UploadedFile, error)
	transcribe       func(token string, in ports.TranscribeInput) (string, error)
	synthesize       func(token string, in ports.SpeechInput) (string, error)
	sendFeedback     func(token string, in ports.FeedbackInput) error
}

func (s *stubUpstream) Health(ctx context.Context) (ports.HealthStatus, error) {
	if s.health == nil {
		s.t.Fatal("unexpected Health call")
	}
	return s.health(ctx)
}

func (s *stubUpstream) HealthDiagnostic(ctx context.Context) (ports.HealthStatus, error) {
	return s.Health(ctx)
}

func (s *stubUpstream) Login(_ context.Context, in ports.LoginInput) (ports.AuthResult, error) {
	if s.login == nil {
		s.t.Fatal("unexpected Login call")
	}
	return s.login(in)
}

func (s *stubUpstream) LegacyLogin(_ context.Context, username, password string) (ports.AuthResult, error) {
	if s.legacyLogin == nil {
		s.t.Fatal("unexpected LegacyLogin call")
	}
	return s.legacyLogin(username, password)
}

func (s *stubUpstream) Signup(_ context.Context, in ports.SignupInput) (ports.AuthResult, error) {
	if s.signup == nil {
		s.t.Fatal("unexpected Signup call")
	}
	return s.signup(in)
}

func (s *stubUpstream) ListUsers(_ context.Context, token string) ([]domain.User, error) {
	if s.listUsers == nil {
		s.t.Fatal("unexpected ListUsers call")
	}
	return s.listUsers(token)
}

func (s *stubUpstream) UpdateUser(_ context.Context, token, id string, in ports.UpdateProfileInput) (domain.User, error) {
	if s.updateUser == nil {
		s.t.Fatal("unexpected UpdateUser call")
	}
	return s.updateUser(token, id, in)
}

func (s *stubUpstream) UpdateUserStatus(_ context.Context, token, id string, status domain.UserStatus) error {
	if s.updateUserStatus == nil {
		s.t.Fatal("unexpected UpdateUserStatus call")
	}
	return s.updateUserStatus(token, id, status)
}

func (s *stubUpstream) DeleteUser(_ context.Context, token, id string) error {
	if s.deleteUser == nil {
		s.t.Fatal("unexpected DeleteUser call")
	}
	return s.deleteUser(token, id)
}

func (s *stubUpstream) ListOpportunities(_ context.Context, token, teacherID string) ([]domain.Opportunity, error) {
	if s.listOpps == nil {
		s.t.Fatal("unexpected ListOpportunities call")
	}
	return s.listOpps(token, teacherID)
}

func (s *stubUpstream) CreateOpportunity(_ context.Context, token string, in ports.CreateOpportunityInput) (domain.Opportunity, error) {
	if s.createOpp == nil {
		s.t.Fatal("unexpected CreateOpportunity call")
	}
	return s.createOpp(token, in)
}

func (s *stubUpstream) ListApplications(_ context.Context, token string, f ports.ApplicationFilter) ([]domain.Application, error) {
	if s.listApps == nil {
		s.t.Fatal("unexpected ListApplications call")
	}
	return s.listApps(token, f)
}

func (s *stubUpstream) SubmitApplication(_ context.Context, token string, in ports.SubmitApplicationInput) (domain.Application, error) {
	if s.submitApp == nil {
		s.t.Fatal("unexpected SubmitApplication call")
	}
	return s.submitApp(token, in)
}

func (s *stubUpstream) DeleteApplication(_ context.Context, token, id string) error {
	if s.deleteApp == nil {
		s.t.Fatal("unexpected DeleteApplication call")
	}
	return s.deleteApp(token, id)
}

func (s *stubUpstream) UpdateApplicationStatus(_ context.Context, token, id string, status domain.ApplicationStatus) error {
	if s.updateAppStatus == nil {
		s.t.Fatal("unexpected UpdateApplicationStatus call")
	}
	return s.updateAppStatus(token, id, status)
}

func (s *stubUpstream) ListCollaborations(_ context.Context, token string, f ports.ApplicationFilter) ([]domain.Collaboration, error) {
	if s.listCollabs == nil {
		s.t.Fatal("unexpected ListCollaborations call")
	}
	return s.listCollabs(token, f)
}

func (s *stubUpstream) CreateCollaboration(_ context.Context, token string, in ports.CreateCollaborationInput) (domain.Collaboration, error) {
	if s.createCollab == nil {
		s.t.Fatal("unexpected CreateCollaboration call")
	}
	return s.createCollab(token, in)
}

func (s *stubUpstream) ListPartnerships(_ context.Context, token, orgID string) ([]domain.Partnership, error) {
	if s.listPartnerships == nil {
		s.t.Fatal("unexpected ListPartnerships call")
	}
	return s.listPartnerships(token, orgID)
}

func (s *stubUpstream) ListEvents(_ context.Context, token, orgID string) ([]domain.Event, error) {
	if s.listEvents == nil {
		s.t.Fatal("unexpected ListEvents call")
	}
	return s.listEvents(token, orgID)
}

func (s *stubUpstream) AdminStats(_ context.Context, token string) (domain.AdminStats, error) {
	if s.adminStats == nil {
		s.t.Fatal("unexpected AdminStats call")
	}
	return s.adminStats(token)
}

func (s *stubUpstream) ListReports(_ context.Context, token string) ([]domain.Report, error) {
	if s.listReports == nil {
		s.t.Fatal("unexpected ListReports call")
	}
	return s.listReports(token)
}

func (s *stubUpstream) Settings(_ context.Context, token string) (domain.PortalSettings, error) {
	if s.settings == nil {
		s.t.Fatal("unexpected Settings call")
	}
	return s.settings(token)
}

func (s *stubUpstream) UpdateSettings(_ context.Context, token string, in domain.PortalSettings) error {
	if s.updateSettings == nil {
		s.t.Fatal("unexpected UpdateSettings call")
	}
	return s.updateSettings(token, in)
}

func (s *stubUpstream) AssistantAnalytics(_ context.Context, token string) (domain.AssistantAnalytics, error) {
	if s.analytics == nil {
		s.t.Fatal("unexpected AssistantAnalytics call")
	}
	return s.analytics(token)
}

func (s *stubUpstream) Chat(_ context.Context, token string, in ports.ChatInput) (ports.ChatResult, error) {
	if s.chat == nil {
		s.t.Fatal("unexpected Chat call")
	}
	return s.chat(token, in)
}

func (s *stubUpstream) UploadDocument(_ context.Context, token string, in ports.UploadInput) (domain.UploadedFile, error) {
	if s.uploadDocument == nil {
		s.t.Fatal("unexpected UploadDocument call")
	}
	return s.uploadDocument(token, in)
}

func (s *stubUpstream) Transcribe(_ context.Context, token string, in ports.TranscribeInput) (string, error) {
	if s.transcribe == nil {
		s.t.Fatal("unexpected Transcribe call")
	}
	return s.transcribe(token, in)
}

func (s *stubUpstream) Synthesize(_ context.Context, token string, in ports.SpeechInput) (string, error) {
	if s.synthesize == nil {
		s.t.Fatal("unexpected Synthesize call")
	}
	return s.synthesize(token, in)
}

func (s *stubUpstream) SendFeedback(_ context.Context, token string, in ports.FeedbackInput) error {
	if s.sendFeedback == nil {
		s.t.Fatal("unexpected SendFeedback call")
	}
	return s.sendFeedback(token, in)
}

// seedSession writes an authenticated session for tests and returns the key.
func seedSession(t *testing.T, store ports.SessionStore, user domain.User) string {
	t.Helper()
	key := "sess-" + user.ID
	err := store.Write(context.Background(), key, &domain.Session{
		Token:     "opaque-token",
		User:      user,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return key
}

// expiredToken builds a signed JWT whose exp claim is in the past.
func expiredToken(t *testing.T) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func testLogger() zerolog.Logger { return zerolog.Nop() }

func newStore() *memory.SessionStore { return memory.NewSessionStore() }
