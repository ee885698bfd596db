package ports

import (
	"context"
	"io"

	"github.com/campusconnect/portal/internal/core/domain"
)

// HealthStatus is the upstream health-check payload.
type HealthStatus struct {
	Status  string
	Message string
}

// LoginInput mirrors POST /api/auth/login.
type LoginInput struct {
	Identifier string
	Password   string
	Remember   bool
}

// SignupInput mirrors POST /api/auth/signup.
type SignupInput struct {
	Role            string
	FullName        string
	UniversityName  string
	MobileNumber    string
	Email           string
	Department      string
	Password        string
	ConfirmPassword string
}

// AuthResult is the normalized outcome of a successful login or signup.
type AuthResult struct {
	Token string
	User  domain.User
}

// ApplicationFilter scopes an application list fetch. At most one of the two
// ids is set; both empty fetches everything (admin view).
type ApplicationFilter struct {
	StudentID string
	TeacherID string
}

// SubmitApplicationInput is the multipart application form, CV attachment
// included.
type SubmitApplicationInput struct {
	OpportunityID string
	StudentID     string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Semester      string
	CGPA          string
	Experience    string
	CoverLetter   string
	CVFilename    string
	CV            io.Reader
}

// CreateOpportunityInput mirrors POST /api/opportunities.
type CreateOpportunityInput struct {
	TeacherID   string
	Title       string
	Description string
	Department  string
	Skills      string
	Deadline    string
	Stipend     string
}

// CreateCollaborationInput mirrors POST /api/collaborations.
type CreateCollaborationInput struct {
	TeacherID    string
	Title        string
	Description  string
	Requirements string
	Duration     string
}

// UpdateProfileInput mirrors PUT /api/users/:id.
type UpdateProfileInput struct {
	Name        string
	Email       string
	University  string
	Mobile      string
	Department  string
	OfficeHours string
}

// ChatTurn is one entry of the history context sent with a chat request.
type ChatTurn struct {
	Role      string
	Content   string
	Timestamp string
}

// ChatInput is the assistant chat request: the new message plus bounded
// history, the speaker's profile, and any uploaded document references.
type ChatInput struct {
	Message       string
	UserID        string
	UserRole      string
	UserName      string
	UserEmail     string
	University    string
	Department    string
	Context       []ChatTurn
	UploadedFiles []string
}

// ChatResult is the normalized assistant reply.
type ChatResult struct {
	Response  string
	FileUsed  string
	ToolsUsed []string
}

// UploadInput is the multipart document upload (field "file").
type UploadInput struct {
	UserID   string
	Filename string
	File     io.Reader
}

// TranscribeInput is the multipart voice submission (field "audio").
type TranscribeInput struct {
	UserID   string
	Filename string
	Audio    io.Reader
}

// SpeechInput mirrors POST /lexie/voice/tts.
type SpeechInput struct {
	Text      string
	UserID    string
	MessageID string
}

// FeedbackInput mirrors POST /lexie/feedback/.
type FeedbackInput struct {
	UserID    string
	MessageID string
	Type      domain.FeedbackType
	Timestamp string
}

// Upstream is the campus backend REST surface the gateway consumes. Every
// call is bounded by a caller-class timeout and classifies failures into the
// domain transport errors.
type Upstream interface {
	Health(ctx context.Context) (HealthStatus, error)
	HealthDiagnostic(ctx context.Context) (HealthStatus, error)

	Login(ctx context.Context, in LoginInput) (AuthResult, error)
	LegacyLogin(ctx context.Context, username, password string) (AuthResult, error)
	Signup(ctx context.Context, in SignupInput) (AuthResult, error)

	ListUsers(ctx context.Context, token string) ([]domain.User, error)
	UpdateUser(ctx context.Context, token, id string, in UpdateProfileInput) (domain.User, error)
	UpdateUserStatus(ctx context.Context, token, id string, status domain.UserStatus) error
	DeleteUser(ctx context.Context, token, id string) error

	ListOpportunities(ctx context.Context, token, teacherID string) ([]domain.Opportunity, error)
	CreateOpportunity(ctx context.Context, token string, in CreateOpportunityInput) (domain.Opportunity, error)

	ListApplications(ctx context.Context, token string, f ApplicationFilter) ([]domain.Application, error)
	SubmitApplication(ctx context.Context, token string, in SubmitApplicationInput) (domain.Application, error)
	DeleteApplication(ctx context.Context, token, id string) error
	UpdateApplicationStatus(ctx context.Context, token, id string, status domain.ApplicationStatus) error

	ListCollaborations(ctx context.Context, token string, f ApplicationFilter) ([]domain.Collaboration, error)
	CreateCollaboration(ctx context.Context, token string, in CreateCollaborationInput) (domain.Collaboration, error)

	ListPartnerships(ctx context.Context, token, orgID string) ([]domain.Partnership, error)
	ListEvents(ctx context.Context, token, orgID string) ([]domain.Event, error)

	AdminStats(ctx context.Context, token string) (domain.AdminStats, error)
	ListReports(ctx context.Context, token string) ([]domain.Report, error)
	Settings(ctx context.Context, token string) (domain.PortalSettings, error)
	UpdateSettings(ctx context.Context, token string, s domain.PortalSettings) error
	AssistantAnalytics(ctx context.Context, token string) (domain.AssistantAnalytics, error)

	Chat(ctx context.Context, token string, in ChatInput) (ChatResult, error)
	UploadDocument(ctx context.Context, token string, in UploadInput) (domain.UploadedFile, error)
	Transcribe(ctx context.Context, token string, in TranscribeInput) (string, error)
	Synthesize(ctx context.Context, token string, in SpeechInput) (string, error)
	SendFeedback(ctx context.Context, token string, in FeedbackInput) error
}
