package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
)

// ListUsers fetches every account for the admin user-management table.
func (c *Client) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	raw, err := c.do(ctx, crudTimeout, http.MethodGet, "/api/users", token, nil, "")
	if err != nil {
		return nil, err
	}
	var raws []rawUser
	if err := decode(raw, &raws); err != nil {
		return nil, err
	}
	return normalizeUsers(raws)
}

// UpdateUser patches a profile and returns the stored record.
func (c *Client) UpdateUser(ctx context.Context, token, id string, in ports.UpdateProfileInput) (domain.User, error) {
	payload := map[string]string{
		"name":        in.Name,
		"email":       in.Email,
		"university":  in.University,
		"mobile":      in.Mobile,
		"department":  in.Department,
		"officeHours": in.OfficeHours,
	}
	raw, err := c.doJSON(ctx, crudTimeout, http.MethodPut, "/api/users/"+url.PathEscape(id), token, payload)
	if err != nil {
		return domain.User{}, err
	}
	var ru rawUser
	if err := decode(raw, &ru); err != nil {
		return domain.User{}, err
	}
	return ru.normalize()
}

// UpdateUserStatus moves an account through the moderation lifecycle.
func (c *Client) UpdateUserStatus(ctx context.Context, token, id string, status domain.UserStatus) error {
	payload := map[string]string{"status": string(status)}
	_, err := c.doJSON(ctx, crudTimeout, http.MethodPut, "/api/users/"+url.PathEscape(id)+"/status", token, payload)
	return err
}

// DeleteUser removes an account permanently.
func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, crudTimeout, http.MethodDelete, "/api/users/"+url.PathEscape(id), token, nil, "")
	return err
}

// ListOpportunities fetches open opportunities; teacherID scopes the list to
// one teacher's postings when set.
func (c *Client) ListOpportunities(ctx context.Context, token, teacherID string) ([]domain.Opportunity, error) {
	path := "/api/opportunities"
	if teacherID != "" {
		path += "?teacherId=" + url.QueryEscape(teacherID)
	}
	raw, err := c.do(ctx, crudTimeout, http.MethodGet, path, token, nil, "")
	if err != nil {
		return nil, err
	}
	var raws []rawOpportunity
	if err := decode(raw, &raws); err != nil {
		return nil, err
	}
	return normalizeOpportunities(raws)
}

// CreateOpportunity posts a new opening.
func (c *Client) CreateOpportunity(ctx context.Context, token string, in ports.CreateOpportunityInput) (domain.Opportunity, error) {
	payload := map[string]string{
		"teacherId":   in.TeacherID,
		"title":       in.Title,
		"description": in.Description,
		"department":  in.Department,
		"skills":      in.Skills,
		"deadline":    in.Deadline,
		"stipend":     in.Stipend,
	}
	raw, err := c.doJSON(ctx, crudTimeout, http.MethodPost, "/api/opportunities", token, payload)
	if err != nil {
		return domain.Opportunity{}, err
	}
	var ro rawOpportunity
	if err := decode(raw, &ro); err != nil {
		return domain.Opportunity{}, err
	}
	return ro.normalize()
}

// ListApplications fetches applications scoped by the filter. Student and
// teacher scopes go through query params; an empty filter returns everything.
func (c *Client) ListApplications(ctx context.Context, token string, f ports.ApplicationFilter) ([]domain.Application, error) {
	path := "/api/applications"
	switch {
	case f.StudentID != "":
		path += "?studentId=" + url.QueryEscape(f.StudentID)
	case f.TeacherID != "":
		path += "?teacherId=" + url.QueryEscape(f.TeacherID)
	}
	raw, err := c.do(ctx, crudTimeout, http.MethodGet, path, token, nil, "")
	if err != nil {
		return nil, err
	}
	var raws []rawApplication
	if err := decode(raw, &raws); err != nil {
		return nil, err
	}
	return normalizeApplications(raws)
}

// SubmitApplication posts the multipart application form, CV included under
// field "cv".
func (c *Client) SubmitApplication(ctx context.Context, token string, in ports.SubmitApplicationInput) (domain.Application, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{
		"opportunityId": in.OpportunityID,
		"studentId":     in.StudentID,
		"firstName":     in.FirstName,
		"lastName":      in.LastName,
		"email":         in.Email,
		"phone":         in.Phone,
		"semester":      in.Semester,
		"cgpa":          in.CGPA,
		"experience":    in.Experience,
		"coverLetter":   in.CoverLetter,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return domain.Application{}, fmt.Errorf("write field %s: %w", name, err)
		}
	}
	if in.CV != nil {
		part, err := w.CreateFormFile("cv", in.CVFilename)
		if err != nil {
			return domain.Application{}, fmt.Errorf("create cv part: %w", err)
		}
		if _, err := io.Copy(part, in.CV); err != nil {
			return domain.Application{}, fmt.Errorf("copy cv: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return domain.Application{}, fmt.Errorf("close multipart: %w", err)
	}

	raw, err := c.do(ctx, crudTimeout, http.MethodPost, "/api/applications", token, &buf, w.FormDataContentType())
	if err != nil {
		return domain.Application{}, err
	}
	var ra rawApplication
	if err := decode(raw, &ra); err != nil {
		return domain.Application{}, err
	}
	return ra.normalize()
}

// DeleteApplication withdraws an application.
func (c *Client) DeleteApplication(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, crudTimeout, http.MethodDelete, "/api/applications/"+url.PathEscape(id), token, nil, "")
	return err
}

// UpdateApplicationStatus records a teacher decision.
func (c *Client) UpdateApplicationStatus(ctx context.Context, token, id string, status domain.ApplicationStatus) error {
	payload := map[string]string{"status": string(status)}
	_, err := c.doJSON(ctx, crudTimeout, http.MethodPut, "/api/applications/"+url.PathEscape(id)+"/status", token, payload)
	return err
}

// ListCollaborations fetches collaboration postings under the same scoping
// rules as applications.
func (c *Client) ListCollaborations(ctx context.Context, token string, f ports.ApplicationFilter) ([]domain.Collaboration, error) {
	path := "/api/collaborations"
	switch {
	case f.StudentID != "":
		path += "?studentId=" + url.QueryEscape(f.StudentID)
	case f.TeacherID != "":
		path += "?teacherId=" + url.QueryEscape(f.TeacherID)
	}
	raw, err := c.do(ctx, crudTimeout, http.MethodGet, path, token, nil, "")
	if err != nil {
		return nil, err
	}
	var raws []rawCollaboration
	if err := decode(raw, &raws); err != nil {
		return nil, err
	}
	return normalizeCollaborations(raws)
}

// CreateCollaboration posts a new collaboration request.
func (c *Client) CreateCollaboration(ctx context.Context, token string, in ports.CreateCollaborationInput) (domain.Collaboration, error) {
	payload := map[string]string{
		"teacherId":    in.TeacherID,
		"title":        in.Title,
		"description":  in.Description,
		"requirements": in.Requirements,
		"duration":     in.Duration,
	}
	raw, err := c.doJSON(ctx, crudTimeout, http.MethodPost, "/api/collaborations", token, payload)
	if err != nil {
		return domain.Collaboration{}, err
	}
	var rc rawCollaboration
	if err := decode(raw, &rc); err != nil {
		return domain.Collaboration{}, err
	}
	return rc.normalize()
}

// ListPartnerships fetches an organization's partnership offers.
func (c *Client) ListPartnerships(ctx context.Context, token, orgID string) ([]domain.Partnership, error) {
	raw, err := c.do(ctx, crudTimeout, http.MethodGet, "/api/partnerships?orgId="+url.QueryEscape(orgID), token, nil, "")
	if err != nil {
		return nil, err
	}
	var out []domain.Partnership
	if err := decode(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEvents fetches an organization's campus events.
func (c *Client) ListEvents(ctx context.Context, token, orgID string) ([]domain.Event, error) {
	raw, err := c.do(ctx, crudTimeout, http.MethodGet, "/api/events?orgId="+url.QueryEscape(orgID), token, nil, "")
	if err != nil {
		return nil, err
	}
	var out []domain.Event
	if err := decode(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AdminStats fetches the aggregate counters block.
func (c *Client) AdminStats(ctx context.Context, token string) (domain.AdminStats, error) {
	raw, err := c.do(ctx, crudTimeout, http.MethodGet, "/api/admin/stats", token, nil, "")
	if err != nil {
		return domain.AdminStats{}, err
	}
	var out domain.AdminStats
	if err := decode(raw, &out); err != nil {
		return domain.AdminStats{}, err
	}
	return out, nil
}

// ListReports fetches moderation reports.
func (c *Client) ListReports(ctx context.Context, token string) ([]domain.Report, error) {
	raw, err := c.do(ctx, crudTimeout, http.MethodGet, "/api/reports", token, nil, "")
	if err != nil {
		return nil, err
	}
	var out []domain.Report
	if err := decode(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Settings fetches the admin-editable site configuration.
func (c *Client) Settings(ctx context.Context, token string) (domain.PortalSettings, error) {
	raw, err := c.do(ctx, crudTimeout, http.MethodGet, "/api/admin/settings", token, nil, "")
	if err != nil {
		return domain.PortalSettings{}, err
	}
	var out domain.PortalSettings
	if err := decode(raw, &out); err != nil {
		return domain.PortalSettings{}, err
	}
	return out, nil
}

// UpdateSettings saves the site configuration.
func (c *Client) UpdateSettings(ctx context.Context, token string, s domain.PortalSettings) error {
	_, err := c.doJSON(ctx, crudTimeout, http.MethodPut, "/api/admin/settings", token, s)
	return err
}

// AssistantAnalytics fetches assistant usage aggregates for admins.
func (c *Client) AssistantAnalytics(ctx context.Context, token string) (domain.AssistantAnalytics, error) {
	raw, err := c.do(ctx, crudTimeout, http.MethodGet, "/admin/analytics/lexie", token, nil, "")
	if err != nil {
		return domain.AssistantAnalytics{}, err
	}
	var out domain.AssistantAnalytics
	if err := decode(raw, &out); err != nil {
		return domain.AssistantAnalytics{}, err
	}
	return out, nil
}
