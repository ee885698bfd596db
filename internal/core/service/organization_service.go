package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
)

// OrganizationService serves the organization dashboard's read-only views.
type OrganizationService struct {
	upstream ports.Upstream
	store    ports.SessionStore
	log      zerolog.Logger
}

func NewOrganizationService(up ports.Upstream, store ports.SessionStore, log zerolog.Logger) *OrganizationService {
	return &OrganizationService{upstream: up, store: store, log: log}
}

// Partnerships lists the organization's partnership offers.
func (s *OrganizationService) Partnerships(ctx context.Context, sessionKey string) ([]domain.Partnership, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return nil, err
	}
	return s.upstream.ListPartnerships(ctx, sess.Token, sess.User.ID)
}

// Events lists the organization's campus events.
func (s *OrganizationService) Events(ctx context.Context, sessionKey string) ([]domain.Event, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return nil, err
	}
	return s.upstream.ListEvents(ctx, sess.Token, sess.User.ID)
}

// Profile returns the organization's own record from the session.
func (s *OrganizationService) Profile(ctx context.Context, sessionKey string) (domain.User, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return domain.User{}, err
	}
	return sess.User, nil
}
