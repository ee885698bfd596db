package service

import (
	"context"
	"errors"
	"testing"

	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
)

func sampleOpportunities() []domain.Opportunity {
	return []domain.Opportunity{
		{ID: "o1", Title: "Research Assistant", Department: "CS", Skills: "python, ml"},
		{ID: "o2", Title: "Teaching Assistant", Department: "Mathematics"},
		{ID: "o3", Title: "Lab Supervisor", Department: "Physics", Skills: "electronics"},
	}
}

func TestBrowseOpportunitiesSearchIsCaseInsensitive(t *testing.T) {
	store := newStore()
	key := seedSession(t, store, studentUser())
	up := &stubUpstream{t: t, listOpps: func(token, teacherID string) ([]domain.Opportunity, error) {
		if teacherID != "" {
			t.Errorf("student browse should not scope by teacher, got %q", teacherID)
		}
		return sampleOpportunities(), nil
	}}
	svc := NewStudentService(up, store, testLogger())

	got, err := svc.BrowseOpportunities(context.Background(), key, "RESEARCH")
	if err != nil {
		t.Fatalf("BrowseOpportunities: %v", err)
	}
	if len(got) != 1 || got[0].ID != "o1" {
		t.Errorf("got %+v", got)
	}

	got, _ = svc.BrowseOpportunities(context.Background(), key, "  ")
	if len(got) != 3 {
		t.Errorf("blank search should keep all, got %d", len(got))
	}

	got, _ = svc.BrowseOpportunities(context.Background(), key, "electronics")
	if len(got) != 1 || got[0].ID != "o3" {
		t.Errorf("skills search got %+v", got)
	}
}

func TestApplyStampsStudentIdentity(t *testing.T) {
	store := newStore()
	key := seedSession(t, store, studentUser())
	up := &stubUpstream{t: t, submitApp: func(_ string, in ports.SubmitApplicationInput) (domain.Application, error) {
		if in.StudentID != "u1" {
			t.Errorf("student_id = %q, want identity from session", in.StudentID)
		}
		return domain.Application{ID: "a1", Title: "Research Assistant", Status: domain.ApplicationPending}, nil
	}}
	svc := NewStudentService(up, store, testLogger())

	app, err := svc.Apply(context.Background(), key, ports.SubmitApplicationInput{
		OpportunityID: "o1",
		StudentID:     "spoofed",
		FirstName:     "Ada",
		Email:         "ada@uni.edu",
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if app.Status != domain.ApplicationPending {
		t.Errorf("status = %q", app.Status)
	}
}

func TestWithdrawOnlyPendingApplications(t *testing.T) {
	store := newStore()
	key := seedSession(t, store, studentUser())
	deleted := ""
	up := &stubUpstream{t: t,
		listApps: func(_ string, f ports.ApplicationFilter) ([]domain.Application, error) {
			return []domain.Application{
				{ID: "a1", Status: domain.ApplicationPending},
				{ID: "a2", Status: domain.ApplicationAccepted},
			}, nil
		},
		deleteApp: func(_, id string) error {
			deleted = id
			return nil
		},
	}
	svc := NewStudentService(up, store, testLogger())

	if err := svc.Withdraw(context.Background(), key, "a1"); err != nil {
		t.Fatalf("Withdraw pending: %v", err)
	}
	if deleted != "a1" {
		t.Errorf("deleted = %q", deleted)
	}

	err := svc.Withdraw(context.Background(), key, "a2")
	if !errors.Is(err, domain.ErrIllegalTransition) {
		t.Errorf("err = %v", err)
	}
	if err := svc.Withdraw(context.Background(), key, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v", err)
	}
}

func teacherUser() domain.User {
	return domain.User{ID: "t1", Name: "Prof. Moriarty", Email: "prof@uni.edu", Role: domain.RoleTeacher}
}

func TestDecideApplicationOnlyPending(t *testing.T) {
	store := newStore()
	key := seedSession(t, store, teacherUser())
	var decided domain.ApplicationStatus
	up := &stubUpstream{t: t,
		listApps: func(_ string, f ports.ApplicationFilter) ([]domain.Application, error) {
			if f.TeacherID != "t1" {
				t.Errorf("filter = %+v", f)
			}
			return []domain.Application{
				{ID: "a1", Status: domain.ApplicationPending},
				{ID: "a2", Status: domain.ApplicationRejected},
			}, nil
		},
		updateAppStatus: func(_, id string, status domain.ApplicationStatus) error {
			decided = status
			return nil
		},
	}
	svc := NewTeacherService(up, store, testLogger())

	status, err := svc.DecideApplication(context.Background(), key, "a1", true)
	if err != nil {
		t.Fatalf("DecideApplication: %v", err)
	}
	if status != domain.ApplicationAccepted || decided != domain.ApplicationAccepted {
		t.Errorf("status = %q, sent = %q", status, decided)
	}

	// A second decision on an already-decided application is refused locally.
	_, err = svc.DecideApplication(context.Background(), key, "a2", false)
	if !errors.Is(err, domain.ErrIllegalTransition) {
		t.Errorf("err = %v", err)
	}
}

func TestPostOpportunityRequiresCoreFields(t *testing.T) {
	store := newStore()
	key := seedSession(t, store, teacherUser())
	svc := NewTeacherService(&stubUpstream{t: t}, store, testLogger())

	_, err := svc.PostOpportunity(context.Background(), key, ports.CreateOpportunityInput{Title: "RA"})
	if !errors.Is(err, domain.ErrMissingFields) {
		t.Errorf("err = %v", err)
	}
}

func adminUser() domain.User {
	return domain.User{ID: "adm1", Name: "Root", Email: "root@uni.edu", Role: domain.RoleAdmin}
}

func TestAdminUsersSearch(t *testing.T) {
	store := newStore()
	key := seedSession(t, store, adminUser())
	up := &stubUpstream{t: t, listUsers: func(string) ([]domain.User, error) {
		return []domain.User{
			{ID: "u1", Name: "Ada Lovelace", Email: "ada@uni.edu", Role: domain.RoleStudent},
			{ID: "u2", Name: "Grace Hopper", Email: "grace@uni.edu", Role: domain.RoleTeacher},
		}, nil
	}}
	svc := NewAdminService(up, store, testLogger())

	got, err := svc.Users(context.Background(), key, "ada")
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	if len(got) != 1 || got[0].ID != "u1" {
		t.Errorf("got %+v", got)
	}

	got, _ = svc.Users(context.Background(), key, "teacher")
	if len(got) != 1 || got[0].ID != "u2" {
		t.Errorf("role search got %+v", got)
	}
}

func TestModerationRespectsStatusTable(t *testing.T) {
	store := newStore()
	key := seedSession(t, store, adminUser())
	var sent domain.UserStatus
	up := &stubUpstream{t: t,
		listUsers: func(string) ([]domain.User, error) {
			return []domain.User{
				{ID: "u1", Status: domain.UserPending},
				{ID: "u2", Status: domain.UserActive},
				{ID: "u3", Status: domain.UserRejected},
			}, nil
		},
		updateUserStatus: func(_, id string, status domain.UserStatus) error {
			sent = status
			return nil
		},
	}
	svc := NewAdminService(up, store, testLogger())

	if err := svc.ApproveUser(context.Background(), key, "u1"); err != nil {
		t.Fatalf("approve pending: %v", err)
	}
	if sent != domain.UserActive {
		t.Errorf("sent = %q", sent)
	}

	// Re-approving an active account is illegal; approving a rejected one is
	// fine.
	if err := svc.ApproveUser(context.Background(), key, "u2"); !errors.Is(err, domain.ErrIllegalTransition) {
		t.Errorf("err = %v", err)
	}
	if err := svc.ApproveUser(context.Background(), key, "u3"); err != nil {
		t.Errorf("approve rejected: %v", err)
	}

	// Reject is pending-only.
	if err := svc.RejectUser(context.Background(), key, "u2"); !errors.Is(err, domain.ErrIllegalTransition) {
		t.Errorf("err = %v", err)
	}
}

func TestReportsCountsOpenOnes(t *testing.T) {
	store := newStore()
	key := seedSession(t, store, adminUser())
	up := &stubUpstream{t: t, listReports: func(string) ([]domain.Report, error) {
		return []domain.Report{
			{ID: "r1", Status: domain.ReportOpen},
			{ID: "r2", Status: "Resolved"},
			{ID: "r3", Status: domain.ReportOpen},
		}, nil
	}}
	svc := NewAdminService(up, store, testLogger())

	reports, open, err := svc.Reports(context.Background(), key)
	if err != nil {
		t.Fatalf("Reports: %v", err)
	}
	if len(reports) != 3 || open != 2 {
		t.Errorf("len = %d, open = %d", len(reports), open)
	}
}

func TestUpdateSettingsValidatesBeforeUpstream(t *testing.T) {
	store := newStore()
	key := seedSession(t, store, adminUser())

	cases := []struct {
		name string
		in   domain.PortalSettings
		want error
	}{
		{"empty title", domain.PortalSettings{SiteTitle: "  ", SupportEmail: "help@uni.edu"}, domain.ErrMissingFields},
		{"empty email", domain.PortalSettings{SiteTitle: "CampusConnect", SupportEmail: ""}, domain.ErrMissingFields},
		{"bad email", domain.PortalSettings{SiteTitle: "CampusConnect", SupportEmail: "not-an-address"}, domain.ErrFieldValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			up := &stubUpstream{t: t} // any upstream call fails the test
			svc := NewAdminService(up, store, testLogger())
			_, err := svc.UpdateSettings(context.Background(), key, tc.in)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestUpdateSettingsSavesTrimmedValues(t *testing.T) {
	store := newStore()
	key := seedSession(t, store, adminUser())
	var saved domain.PortalSettings
	up := &stubUpstream{t: t, updateSettings: func(_ string, in domain.PortalSettings) error {
		saved = in
		return nil
	}}
	svc := NewAdminService(up, store, testLogger())

	out, err := svc.UpdateSettings(context.Background(), key, domain.PortalSettings{
		SiteTitle:    "  CampusConnect  ",
		SupportEmail: " help@uni.edu ",
	})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if saved.SiteTitle != "CampusConnect" || saved.SupportEmail != "help@uni.edu" {
		t.Errorf("saved = %+v", saved)
	}
	if out != saved {
		t.Errorf("out = %+v, saved = %+v", out, saved)
	}
}

func TestOrganizationViewsScopeByIdentity(t *testing.T) {
	store := newStore()
	org := domain.User{ID: "org1", Name: "ACME Labs", Role: domain.RoleOrganization}
	key := seedSession(t, store, org)
	up := &stubUpstream{t: t,
		listPartnerships: func(_, orgID string) ([]domain.Partnership, error) {
			if orgID != "org1" {
				t.Errorf("orgID = %q", orgID)
			}
			return []domain.Partnership{{ID: "p1", Title: "Internship pipeline"}}, nil
		},
		listEvents: func(_, orgID string) ([]domain.Event, error) {
			return []domain.Event{{ID: "e1", Title: "Career fair"}}, nil
		},
	}
	svc := NewOrganizationService(up, store, testLogger())

	parts, err := svc.Partnerships(context.Background(), key)
	if err != nil || len(parts) != 1 {
		t.Fatalf("Partnerships: %v %+v", err, parts)
	}
	events, err := svc.Events(context.Background(), key)
	if err != nil || len(events) != 1 {
		t.Fatalf("Events: %v %+v", err, events)
	}
	profile, err := svc.Profile(context.Background(), key)
	if err != nil || profile.ID != "org1" {
		t.Fatalf("Profile: %v %+v", err, profile)
	}
}

func TestUpdateProfileRefreshesSession(t *testing.T) {
	store := newStore()
	key := seedSession(t, store, studentUser())
	up := &stubUpstream{t: t, updateUser: func(_, id string, in ports.UpdateProfileInput) (domain.User, error) {
		if id != "u1" {
			t.Errorf("id = %q", id)
		}
		return domain.User{ID: "u1", Name: in.Name, Email: "ada@uni.edu", Role: domain.RoleStudent}, nil
	}}
	svc := NewStudentService(up, store, testLogger())

	user, err := svc.UpdateProfile(context.Background(), key, ports.UpdateProfileInput{Name: "Ada L."})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if user.Name != "Ada L." {
		t.Errorf("name = %q", user.Name)
	}
	sess, _ := store.Read(context.Background(), key)
	if sess.User.Name != "Ada L." {
		t.Errorf("session user = %+v", sess.User)
	}
}

func TestDashboardsRequireSession(t *testing.T) {
	store := newStore()
	svc := NewStudentService(&stubUpstream{t: t}, store, testLogger())
	_, err := svc.MyApplications(context.Background(), "missing")
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("err = %v", err)
	}
}
