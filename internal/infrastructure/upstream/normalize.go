package upstream

import (
	"fmt"

	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
)

// The backend emits inconsistent field names across endpoints (_id vs id,
// access_token vs token, title vs opportunityTitle, department vs dept).
// The raw* types accept every known alias; the normalize methods collapse
// them into one canonical shape and reject payloads where no alias carried
// the required value.

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

type rawUser struct {
	MongoID    string `json:"_id"`
	ID         string `json:"id"`
	Name       string `json:"name"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	Mobile     string `json:"mobile"`
	MobileNum  string `json:"mobileNumber"`
	Role       string `json:"role"`
	University string `json:"university"`
	UniName    string `json:"universityName"`
	Department string `json:"department"`
	Dept       string `json:"dept"`
	Status     string `json:"status"`
}

func (r rawUser) normalize() (domain.User, error) {
	id := firstNonEmpty(r.MongoID, r.ID)
	if id == "" {
		return domain.User{}, fmt.Errorf("%w: user without _id or id", domain.ErrMalformedPayload)
	}
	u := domain.User{
		ID:         id,
		Name:       firstNonEmpty(r.Name, r.FullName),
		Email:      r.Email,
		Mobile:     firstNonEmpty(r.Mobile, r.MobileNum),
		Role:       r.Role,
		University: firstNonEmpty(r.University, r.UniName),
		Department: firstNonEmpty(r.Department, r.Dept),
		Status:     domain.UserStatus(r.Status),
	}
	return u, nil
}

// rawAuth covers both token envelope generations. The role travels inside
// user; a top-level data.role field, when present, is ignored as stale.
type rawAuth struct {
	AccessToken string   `json:"access_token"`
	Token       string   `json:"token"`
	User        *rawUser `json:"user"`
	Data        *struct {
		AccessToken string   `json:"access_token"`
		Token       string   `json:"token"`
		User        *rawUser `json:"user"`
	} `json:"data"`
}

func (r rawAuth) normalize() (ports.AuthResult, error) {
	token := firstNonEmpty(r.AccessToken, r.Token)
	user := r.User
	if r.Data != nil {
		token = firstNonEmpty(token, r.Data.AccessToken, r.Data.Token)
		if user == nil {
			user = r.Data.User
		}
	}
	if token == "" {
		return ports.AuthResult{}, fmt.Errorf("%w: auth response without access_token or token", domain.ErrMalformedPayload)
	}
	if user == nil {
		return ports.AuthResult{}, fmt.Errorf("%w: auth response without user", domain.ErrMalformedPayload)
	}
	u, err := user.normalize()
	if err != nil {
		return ports.AuthResult{}, err
	}
	if !domain.ValidRole(u.Role) {
		return ports.AuthResult{}, fmt.Errorf("%w: unknown role %q", domain.ErrMalformedPayload, u.Role)
	}
	return ports.AuthResult{Token: token, User: u}, nil
}

type rawOpportunity struct {
	MongoID     string `json:"_id"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Department  string `json:"department"`
	Dept        string `json:"dept"`
	Skills      string `json:"skills"`
	Deadline    string `json:"deadline"`
	Stipend     string `json:"stipend"`
	Status      string `json:"status"`
	TeacherID   string `json:"teacher_id"`
}

func (r rawOpportunity) normalize() (domain.Opportunity, error) {
	id := firstNonEmpty(r.MongoID, r.ID)
	if id == "" {
		return domain.Opportunity{}, fmt.Errorf("%w: opportunity without _id or id", domain.ErrMalformedPayload)
	}
	return domain.Opportunity{
		ID:          id,
		Title:       r.Title,
		Description: r.Description,
		Department:  firstNonEmpty(r.Department, r.Dept),
		Skills:      r.Skills,
		Deadline:    r.Deadline,
		Stipend:     r.Stipend,
		Status:      r.Status,
		TeacherID:   r.TeacherID,
	}, nil
}

type rawApplication struct {
	MongoID          string `json:"_id"`
	ID               string `json:"id"`
	OpportunityID    string `json:"opportunity_id"`
	Title            string `json:"title"`
	OpportunityTitle string `json:"opportunityTitle"`
	Department       string `json:"department"`
	Dept             string `json:"dept"`
	StudentID        string `json:"student_id"`
	StudentName      string `json:"student_name"`
	CoverLetter      string `json:"cover_letter"`
	Status           string `json:"status"`
	CreatedAt        string `json:"created_at"`
}

func (r rawApplication) normalize() (domain.Application, error) {
	id := firstNonEmpty(r.MongoID, r.ID)
	if id == "" {
		return domain.Application{}, fmt.Errorf("%w: application without _id or id", domain.ErrMalformedPayload)
	}
	// Records created before the status column existed count as pending.
	status := domain.ApplicationStatus(firstNonEmpty(r.Status, string(domain.ApplicationPending)))
	return domain.Application{
		ID:            id,
		OpportunityID: r.OpportunityID,
		Title:         firstNonEmpty(r.Title, r.OpportunityTitle),
		Department:    firstNonEmpty(r.Department, r.Dept),
		StudentID:     r.StudentID,
		StudentName:   r.StudentName,
		CoverLetter:   r.CoverLetter,
		Status:        status,
		CreatedAt:     r.CreatedAt,
	}, nil
}

type rawCollaboration struct {
	MongoID      string `json:"_id"`
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Duration     string `json:"duration"`
	TeacherID    string `json:"teacher_id"`
	TeacherName  string `json:"teacher_name"`
	Status       string `json:"status"`
}

func (r rawCollaboration) normalize() (domain.Collaboration, error) {
	id := firstNonEmpty(r.MongoID, r.ID)
	if id == "" {
		return domain.Collaboration{}, fmt.Errorf("%w: collaboration without _id or id", domain.ErrMalformedPayload)
	}
	return domain.Collaboration{
		ID:           id,
		Title:        r.Title,
		Description:  r.Description,
		Requirements: r.Requirements,
		Duration:     r.Duration,
		TeacherID:    r.TeacherID,
		TeacherName:  r.TeacherName,
		Status:       r.Status,
	}, nil
}

func normalizeUsers(raws []rawUser) ([]domain.User, error) {
	out := make([]domain.User, 0, len(raws))
	for _, r := range raws {
		u, err := r.normalize()
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func normalizeOpportunities(raws []rawOpportunity) ([]domain.Opportunity, error) {
	out := make([]domain.Opportunity, 0, len(raws))
	for _, r := range raws {
		o, err := r.normalize()
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func normalizeApplications(raws []rawApplication) ([]domain.Application, error) {
	out := make([]domain.Application, 0, len(raws))
	for _, r := range raws {
		a, err := r.normalize()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func normalizeCollaborations(raws []rawCollaboration) ([]domain.Collaboration, error) {
	out := make([]domain.Collaboration, 0, len(raws))
	for _, r := range raws {
		c, err := r.normalize()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
