package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
)

// TeacherService serves the teacher dashboard.
type TeacherService struct {
	upstream ports.Upstream
	store    ports.SessionStore
	log      zerolog.Logger
}

func NewTeacherService(up ports.Upstream, store ports.SessionStore, log zerolog.Logger) *TeacherService {
	return &TeacherService{upstream: up, store: store, log: log}
}

// PostOpportunity publishes a new opening under the teacher's identity.
func (s *TeacherService) PostOpportunity(ctx context.Context, sessionKey string, in ports.CreateOpportunityInput) (domain.Opportunity, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return domain.Opportunity{}, err
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return domain.Opportunity{}, domain.ErrMissingFields
	}
	in.TeacherID = sess.User.ID

	opp, err := s.upstream.CreateOpportunity(ctx, sess.Token, in)
	if err != nil {
		return domain.Opportunity{}, err
	}
	s.log.Info().Str("teacher_id", sess.User.ID).Str("opportunity_id", opp.ID).Msg("opportunity posted")
	return opp, nil
}

// MyOpportunities lists the teacher's own postings, searchable like the
// student browse view.
func (s *TeacherService) MyOpportunities(ctx context.Context, sessionKey, search string) ([]domain.Opportunity, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return nil, err
	}
	opps, err := s.upstream.ListOpportunities(ctx, sess.Token, sess.User.ID)
	if err != nil {
		return nil, err
	}
	return filterOpportunities(opps, search), nil
}

// ReceivedApplications lists applications against the teacher's postings.
func (s *TeacherService) ReceivedApplications(ctx context.Context, sessionKey string) ([]domain.Application, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return nil, err
	}
	return s.upstream.ListApplications(ctx, sess.Token, ports.ApplicationFilter{TeacherID: sess.User.ID})
}

// DecideApplication accepts or rejects one application. Only pending
// applications can be decided; a second decision is rejected locally before
// anything is sent upstream.
func (s *TeacherService) DecideApplication(ctx context.Context, sessionKey, applicationID string, accept bool) (domain.ApplicationStatus, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return "", err
	}
	apps, err := s.upstream.ListApplications(ctx, sess.Token, ports.ApplicationFilter{TeacherID: sess.User.ID})
	if err != nil {
		return "", err
	}
	var target *domain.Application
	for i := range apps {
		if apps[i].ID == applicationID {
			target = &apps[i]
			break
		}
	}
	if target == nil {
		return "", domain.ErrNotFound
	}
	if !target.Status.CanDecide() {
		return "", fmt.Errorf("%w: application is %s", domain.ErrIllegalTransition, target.Status)
	}

	next := domain.ApplicationRejected
	if accept {
		next = domain.ApplicationAccepted
	}
	if err := s.upstream.UpdateApplicationStatus(ctx, sess.Token, applicationID, next); err != nil {
		return "", err
	}
	s.log.Info().
		Str("teacher_id", sess.User.ID).
		Str("application_id", applicationID).
		Str("status", string(next)).
		Msg("application decided")
	return next, nil
}

// Collaborations lists the teacher's collaboration postings.
func (s *TeacherService) Collaborations(ctx context.Context, sessionKey string) ([]domain.Collaboration, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return nil, err
	}
	return s.upstream.ListCollaborations(ctx, sess.Token, ports.ApplicationFilter{TeacherID: sess.User.ID})
}

// PostCollaboration publishes a collaboration request.
func (s *TeacherService) PostCollaboration(ctx context.Context, sessionKey string, in ports.CreateCollaborationInput) (domain.Collaboration, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return domain.Collaboration{}, err
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Description) == "" {
		return domain.Collaboration{}, domain.ErrMissingFields
	}
	in.TeacherID = sess.User.ID
	return s.upstream.CreateCollaboration(ctx, sess.Token, in)
}

// UpdateProfile patches the teacher's own profile.
func (s *TeacherService) UpdateProfile(ctx context.Context, sessionKey string, in ports.UpdateProfileInput) (domain.User, error) {
	return updateProfile(ctx, s.upstream, s.store, sessionKey, in)
}
