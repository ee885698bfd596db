package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
)

// StudentService serves the student dashboard. It holds no list state of its
// own; every read goes to the backend and mutations return the stored record.
type StudentService struct {
	upstream ports.Upstream
	store    ports.SessionStore
	log      zerolog.Logger
}

func NewStudentService(up ports.Upstream, store ports.SessionStore, log zerolog.Logger) *StudentService {
	return &StudentService{upstream: up, store: store, log: log}
}

// BrowseOpportunities lists open opportunities, filtered by a case-insensitive
// search over title, department, and skills.
func (s *StudentService) BrowseOpportunities(ctx context.Context, sessionKey, search string) ([]domain.Opportunity, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return nil, err
	}
	opps, err := s.upstream.ListOpportunities(ctx, sess.Token, "")
	if err != nil {
		return nil, err
	}
	return filterOpportunities(opps, search), nil
}

// MyApplications lists the student's own submissions.
func (s *StudentService) MyApplications(ctx context.Context, sessionKey string) ([]domain.Application, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return nil, err
	}
	return s.upstream.ListApplications(ctx, sess.Token, ports.ApplicationFilter{StudentID: sess.User.ID})
}

// Apply submits an application form. The student identity always comes from
// the session, never from the form.
func (s *StudentService) Apply(ctx context.Context, sessionKey string, in ports.SubmitApplicationInput) (domain.Application, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return domain.Application{}, err
	}
	if in.OpportunityID == "" || strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.Email) == "" {
		return domain.Application{}, domain.ErrMissingFields
	}
	if in.CV != nil && !strings.HasSuffix(strings.ToLower(in.CVFilename), ".pdf") {
		return domain.Application{}, domain.ErrUnsupportedFileType
	}
	in.StudentID = sess.User.ID

	app, err := s.upstream.SubmitApplication(ctx, sess.Token, in)
	if err != nil {
		return domain.Application{}, err
	}
	s.log.Info().Str("student_id", sess.User.ID).Str("application_id", app.ID).Msg("application submitted")
	return app, nil
}

// Withdraw deletes one of the student's pending applications. Decided
// applications cannot be withdrawn.
func (s *StudentService) Withdraw(ctx context.Context, sessionKey, applicationID string) error {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return err
	}
	apps, err := s.upstream.ListApplications(ctx, sess.Token, ports.ApplicationFilter{StudentID: sess.User.ID})
	if err != nil {
		return err
	}
	var target *domain.Application
	for i := range apps {
		if apps[i].ID == applicationID {
			target = &apps[i]
			break
		}
	}
	if target == nil {
		return domain.ErrNotFound
	}
	if !target.Status.CanWithdraw() {
		return fmt.Errorf("%w: application is %s", domain.ErrIllegalTransition, target.Status)
	}
	if err := s.upstream.DeleteApplication(ctx, sess.Token, applicationID); err != nil {
		return err
	}
	s.log.Info().Str("student_id", sess.User.ID).Str("application_id", applicationID).Msg("application withdrawn")
	return nil
}

// Collaborations lists open collaboration postings.
func (s *StudentService) Collaborations(ctx context.Context, sessionKey string) ([]domain.Collaboration, error) {
	sess, err := requireSession(ctx, s.store, sessionKey)
	if err != nil {
		return nil, err
	}
	return s.upstream.ListCollaborations(ctx, sess.Token, ports.ApplicationFilter{})
}

// UpdateProfile patches the student's own profile and refreshes the stored
// session with the returned record.
func (s *StudentService) UpdateProfile(ctx context.Context, sessionKey string, in ports.UpdateProfileInput) (domain.User, error) {
	return updateProfile(ctx, s.upstream, s.store, sessionKey, in)
}

// updateProfile is the shared self-service profile patch: the record comes
// back from the backend and replaces the user held in the session.
func updateProfile(ctx context.Context, up ports.Upstream, store ports.SessionStore, sessionKey string, in ports.UpdateProfileInput) (domain.User, error) {
	sess, err := requireSession(ctx, store, sessionKey)
	if err != nil {
		return domain.User{}, err
	}
	user, err := up.UpdateUser(ctx, sess.Token, sess.User.ID, in)
	if err != nil {
		return domain.User{}, err
	}
	sess.User = user
	if err := store.Write(ctx, sessionKey, sess); err != nil {
		return domain.User{}, fmt.Errorf("refresh session: %w", err)
	}
	return user, nil
}

// filterOpportunities keeps entries whose title, department, or skills
// contain the search term, case-insensitively. An empty term keeps all.
func filterOpportunities(opps []domain.Opportunity, search string) []domain.Opportunity {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return opps
	}
	out := make([]domain.Opportunity, 0, len(opps))
	for _, o := range opps {
		haystack := strings.ToLower(o.Title + " " + o.Department + " " + o.Skills)
		if strings.Contains(haystack, term) {
			out = append(out, o)
		}
	}
	return out
}
