package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
)

// AdminService serves the admin dashboard: user moderation, aggregate
// counters, reports, and assistant analytics.
type AdminService struct {
	upstream ports.Upstream
	store    ports.SessionStore
	log      zerolog.Logger
}

func NewAdminService(up ports.Upstream, store ports.SessionStore, log zerolog.Logger) *AdminService {
	return &AdminService{upstream: up, store: store, log: log}
}

// Users lists accounts filtered by a case-insensitive search over name,
// email, and role.
func (s *AdminService) Users(ctx context.Context, sessionKey, search string) ([]domain.User, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return nil, err
	}
	users, err := s.upstream.ListUsers(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	return filterUsers(users, search), nil
}

// ApproveUser activates an account. Legal from any non-active status.
func (s *AdminService) ApproveUser(ctx context.Context, sessionKey, userID string) error {
	return s.moderate(ctx, sessionKey, userID, "approve", domain.UserActive)
}

// RejectUser declines a pending account.
func (s *AdminService) RejectUser(ctx context.Context, sessionKey, userID string) error {
	return s.moderate(ctx, sessionKey, userID, "reject", domain.UserRejected)
}

// DeleteUser removes an account permanently. Always legal.
func (s *AdminService) DeleteUser(ctx context.Context, sessionKey, userID string) error {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return err
	}
	if err := s.upstream.DeleteUser(ctx, sess.Token, userID); err != nil {
		return err
	}
	s.log.Info().Str("admin_id", sess.User.ID).Str("user_id", userID).Msg("account deleted")
	return nil
}

// moderate applies a status transition after checking it is legal from the
// account's current status.
func (s *AdminService) moderate(ctx context.Context, sessionKey, userID, action string, next domain.UserStatus) error {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return err
	}
	users, err := s.upstream.ListUsers(ctx, sess.Token)
	if err != nil {
		return err
	}
	var target *domain.User
	for i := range users {
		if users[i].ID == userID {
			target = &users[i]
			break
		}
	}
	if target == nil {
		return domain.ErrNotFound
	}
	if !actionLegal(target.Status, action) {
		return fmt.Errorf("%w: cannot %s account in status %s", domain.ErrIllegalTransition, action, target.Status)
	}
	if err := s.upstream.UpdateUserStatus(ctx, sess.Token, userID, next); err != nil {
		return err
	}
	s.log.Info().
		Str("admin_id", sess.User.ID).
		Str("user_id", userID).
		Str("status", string(next)).
		Msg("account moderated")
	return nil
}

// Stats fetches the aggregate counters block.
func (s *AdminService) Stats(ctx context.Context, sessionKey string) (domain.AdminStats, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return domain.AdminStats{}, err
	}
	return s.upstream.AdminStats(ctx, sess.Token)
}

// AllOpportunities lists every posting for the admin overview.
func (s *AdminService) AllOpportunities(ctx context.Context, sessionKey string) ([]domain.Opportunity, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return nil, err
	}
	return s.upstream.ListOpportunities(ctx, sess.Token, "")
}

// Reports lists moderation reports along with the count still open.
func (s *AdminService) Reports(ctx context.Context, sessionKey string) ([]domain.Report, int, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return nil, 0, err
	}
	reports, err := s.upstream.ListReports(ctx, sess.Token)
	if err != nil {
		return nil, 0, err
	}
	open := 0
	for _, r := range reports {
		if r.Status == domain.ReportOpen {
			open++
		}
	}
	return reports, open, nil
}

// Settings fetches the current site configuration.
func (s *AdminService) Settings(ctx context.Context, sessionKey string) (domain.PortalSettings, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return domain.PortalSettings{}, err
	}
	return s.upstream.Settings(ctx, sess.Token)
}

// UpdateSettings validates and saves the site configuration. Blocked
// submissions never reach upstream.
func (s *AdminService) UpdateSettings(ctx context.Context, sessionKey string, in domain.PortalSettings) (domain.PortalSettings, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return domain.PortalSettings{}, err
	}

	in.SiteTitle = strings.TrimSpace(in.SiteTitle)
	in.SupportEmail = strings.TrimSpace(in.SupportEmail)
	if in.SiteTitle == "" || in.SupportEmail == "" {
		return domain.PortalSettings{}, domain.ErrMissingFields
	}
	if !emailPattern.MatchString(in.SupportEmail) {
		return domain.PortalSettings{}, fmt.Errorf("%w: support email is not a valid address", domain.ErrFieldValidation)
	}

	if err := s.upstream.UpdateSettings(ctx, sess.Token, in); err != nil {
		return domain.PortalSettings{}, err
	}
	s.log.Info().Str("admin_id", sess.User.ID).Str("site_title", in.SiteTitle).Msg("site settings updated")
	return in, nil
}

// AssistantAnalytics fetches the assistant usage aggregates.
func (s *AdminService) AssistantAnalytics(ctx context.Context, sessionKey string) (domain.AssistantAnalytics, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return domain.AssistantAnalytics{}, err
	}
	return s.upstream.AssistantAnalytics(ctx, sess.Token)
}

func actionLegal(status domain.UserStatus, action string) bool {
	for _, a := range domain.LegalUserActions(status) {
		if a == action {
			return true
		}
	}
	return false
}

// filterUsers keeps accounts whose name, email, or role contain the search
// term, case-insensitively.
func filterUsers(users []domain.User, search string) []domain.User {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return users
	}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		haystack := strings.ToLower(u.Name + " " + u.Email + " " + u.Role)
		if strings.Contains(haystack, term) {
			out = append(out, u)
		}
	}
	return out
}
