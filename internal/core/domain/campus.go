package domain

// ApplicationStatus is the lifecycle state of a student application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationAccepted ApplicationStatus = "Accepted"
	ApplicationRejected ApplicationStatus = "Rejected"
)

// applicationActions maps an application status to the actions legal from it.
// Teachers may decide only pending applications; students may withdraw until
// a decision lands.
var applicationActions = map[ApplicationStatus][]string{
	ApplicationPending: {"accept", "reject", "withdraw"},
}

// CanDecide reports whether a teacher accept/reject is legal from s.
func (s ApplicationStatus) CanDecide() bool {
	for _, a := range applicationActions[s] {
		if a == "accept" {
			return true
		}
	}
	return false
}

// CanWithdraw reports whether a student withdrawal is legal from s.
func (s ApplicationStatus) CanWithdraw() bool {
	for _, a := range applicationActions[s] {
		if a == "withdraw" {
			return true
		}
	}
	return false
}

// Opportunity is a research/teaching opening posted by a teacher.
type Opportunity struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Department  string `json:"department,omitempty"`
	Skills      string `json:"skills,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
	Stipend     string `json:"stipend,omitempty"`
	Status      string `json:"status,omitempty"`
	TeacherID   string `json:"teacher_id,omitempty"`
}

// Application is a student's submission against an opportunity.
type Application struct {
	ID            string            `json:"id"`
	OpportunityID string            `json:"opportunity_id,omitempty"`
	Title         string            `json:"title"`
	Department    string            `json:"department,omitempty"`
	StudentID     string            `json:"student_id,omitempty"`
	StudentName   string            `json:"student_name,omitempty"`
	CoverLetter   string            `json:"cover_letter,omitempty"`
	Status        ApplicationStatus `json:"status"`
	CreatedAt     string            `json:"created_at,omitempty"`
}

// Collaboration is a teacher-posted request students can join.
type Collaboration struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Requirements string `json:"requirements,omitempty"`
	Duration     string `json:"duration,omitempty"`
	TeacherID    string `json:"teacher_id,omitempty"`
	TeacherName  string `json:"teacher_name,omitempty"`
	Status       string `json:"status,omitempty"`
}

// Partnership is an organization-scoped collaboration offer.
type Partnership struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Event is an organization-scoped campus event.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

// Report is a moderation item surfaced on the admin dashboard.
type Report struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// ReportOpen is the status that counts toward moderation alerts.
const ReportOpen = "Open"

// AdminStats is the aggregate counters block of the admin dashboard.
type AdminStats struct {
	TotalUsers         int `json:"total_users"`
	TotalOpportunities int `json:"total_opportunities"`
	TotalApplications  int `json:"total_applications"`
}

// PortalSettings is the admin-editable site configuration.
type PortalSettings struct {
	SiteTitle    string `json:"site_title"`
	SupportEmail string `json:"support_email"`
}

// AssistantAnalytics summarises assistant usage for admins.
type AssistantAnalytics struct {
	TotalChats     int            `json:"total_chats"`
	ActiveUsers    int            `json:"active_users"`
	PopularQueries []PopularQuery `json:"popular_queries"`
	Positive       int            `json:"positive_feedback"`
	Negative       int            `json:"negative_feedback"`
}

// PopularQuery is one entry of the assistant analytics query ranking.
type PopularQuery struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}
