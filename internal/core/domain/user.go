package domain

const (
	RoleStudent      = "student"
	RoleTeacher      = "teacher"
	RoleAdmin        = "admin"
	RoleOrganization = "organization"
)

// roleRoutes maps a role to its dashboard landing route.
var roleRoutes = map[string]string{
	RoleStudent:      "/student",
	RoleTeacher:      "/teacher",
	RoleAdmin:        "/admin",
	RoleOrganization: "/organization",
}

// ValidRole reports whether role is one of the four portal roles.
func ValidRole(role string) bool {
	_, ok := roleRoutes[role]
	return ok
}

// LandingRoute returns the dashboard route for a role. Unknown roles land on
// the student dashboard, mirroring the portal's historical fallback.
func LandingRoute(role string) string {
	if r, ok := roleRoutes[role]; ok {
		return r
	}
	return roleRoutes[RoleStudent]
}

// UserStatus is the moderation state of a portal account.
type UserStatus string

const (
	UserPending  UserStatus = "Pending"
	UserActive   UserStatus = "Active"
	UserRejected UserStatus = "Rejected"
)

// userActions maps an account status to the admin actions legal from it.
// Approve is offered whenever the account is not already active; reject only
// while the account is still pending; delete is always available.
var userActions = map[UserStatus][]string{
	UserPending:  {"approve", "reject", "delete"},
	UserActive:   {"delete"},
	UserRejected: {"approve", "delete"},
}

// LegalUserActions returns the ordered admin actions for a status.
func LegalUserActions(status UserStatus) []string {
	if actions, ok := userActions[status]; ok {
		return actions
	}
	return userActions[UserPending]
}

// User is the profile record held alongside the bearer credential. The
// upstream backend owns the authoritative copy.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Mobile     string     `json:"mobile,omitempty"`
	Role       string     `json:"role"`
	University string     `json:"university,omitempty"`
	Department string     `json:"department,omitempty"`
	Status     UserStatus `json:"status,omitempty"`
}
