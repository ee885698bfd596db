package handler

import "github.com/campusconnect/portal/internal/core/ports"

type profileRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	University  string `json:"university"`
	Mobile      string `json:"mobile"`
	Department  string `json:"department"`
	OfficeHours string `json:"officeHours"`
}

func (r profileRequest) toInput() ports.UpdateProfileInput {
	return ports.UpdateProfileInput{
		Name:        r.Name,
		Email:       r.Email,
		University:  r.University,
		Mobile:      r.Mobile,
		Department:  r.Department,
		OfficeHours: r.OfficeHours,
	}
}

type opportunityRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Department  string `json:"department"`
	Skills      string `json:"skills"`
	Deadline    string `json:"deadline" validate:"required"`
	Stipend     string `json:"stipend"`
}

func (r opportunityRequest) toInput() ports.CreateOpportunityInput {
	return ports.CreateOpportunityInput{
		Title:       r.Title,
		Description: r.Description,
		Department:  r.Department,
		Skills:      r.Skills,
		Deadline:    r.Deadline,
		Stipend:     r.Stipend,
	}
}

type collaborationRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Requirements string `json:"requirements"`
	Duration     string `json:"duration"`
}

func (r collaborationRequest) toInput() ports.CreateCollaborationInput {
	return ports.CreateCollaborationInput{
		Title:        r.Title,
		Description:  r.Description,
		Requirements: r.Requirements,
		Duration:     r.Duration,
	}
}

type decisionRequest struct {
	Status string `json:"status" validate:"required,oneof=Accepted Rejected"`
}

type settingsRequest struct {
	SiteTitle    string `json:"siteTitle" validate:"required"`
	SupportEmail string `json:"supportEmail" validate:"required,email"`
}
