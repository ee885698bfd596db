package ports

import (
	"context"

	"github.com/campusconnect/portal/internal/core/domain"
)

// StudentDashboard serves the student role's lists and actions.
type StudentDashboard interface {
	BrowseOpportunities(ctx context.Context, sessionKey, search string) ([]domain.Opportunity, error)
	MyApplications(ctx context.Context, sessionKey string) ([]domain.Application, error)
	Apply(ctx context.Context, sessionKey string, in SubmitApplicationInput) (domain.Application, error)
	Withdraw(ctx context.Context, sessionKey, applicationID string) error
	Collaborations(ctx context.Context, sessionKey string) ([]domain.Collaboration, error)
	UpdateProfile(ctx context.Context, sessionKey string, in UpdateProfileInput) (domain.User, error)
}

// TeacherDashboard serves the teacher role's lists and actions.
type TeacherDashboard interface {
	PostOpportunity(ctx context.Context, sessionKey string, in CreateOpportunityInput) (domain.Opportunity, error)
	MyOpportunities(ctx context.Context, sessionKey, search string) ([]domain.Opportunity, error)
	ReceivedApplications(ctx context.Context, sessionKey string) ([]domain.Application, error)
	DecideApplication(ctx context.Context, sessionKey, applicationID string, accept bool) (domain.ApplicationStatus, error)
	Collaborations(ctx context.Context, sessionKey string) ([]domain.Collaboration, error)
	PostCollaboration(ctx context.Context, sessionKey string, in CreateCollaborationInput) (domain.Collaboration, error)
	UpdateProfile(ctx context.Context, sessionKey string, in UpdateProfileInput) (domain.User, error)
}

// AdminDashboard serves the admin role's lists and actions.
type AdminDashboard interface {
	Users(ctx context.Context, sessionKey, search string) ([]domain.User, error)
	ApproveUser(ctx context.Context, sessionKey, userID string) error
	RejectUser(ctx context.Context, sessionKey, userID string) error
	DeleteUser(ctx context.Context, sessionKey, userID string) error
	Stats(ctx context.Context, sessionKey string) (domain.AdminStats, error)
	AllOpportunities(ctx context.Context, sessionKey string) ([]domain.Opportunity, error)
	Reports(ctx context.Context, sessionKey string) ([]domain.Report, int, error)
	Settings(ctx context.Context, sessionKey string) (domain.PortalSettings, error)
	UpdateSettings(ctx context.Context, sessionKey string, s domain.PortalSettings) (domain.PortalSettings, error)
	AssistantAnalytics(ctx context.Context, sessionKey string) (domain.AssistantAnalytics, error)
}

// OrganizationDashboard serves the organization role's lists.
type OrganizationDashboard interface {
	Partnerships(ctx context.Context, sessionKey string) ([]domain.Partnership, error)
	Events(ctx context.Context, sessionKey string) ([]domain.Event, error)
	Profile(ctx context.Context, sessionKey string) (domain.User, error)
}
