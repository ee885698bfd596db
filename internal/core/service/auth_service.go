package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	mobilePattern = regexp.MustCompile(`^\+?[0-9][0-9\s-]{6,14}$`)
)

// Strength scores a password on five factors: length of at least eight,
// an upper-case letter, a lower-case letter, a digit, and a special
// character. The label buckets the score for display.
func Strength(password string) ports.PasswordStrength {
	s := ports.PasswordStrength{Length: len(password) >= 8}
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			s.Upper = true
		case unicode.IsLower(r):
			s.Lower = true
		case unicode.IsDigit(r):
			s.Digit = true
		default:
			s.Special = true
		}
	}
	for _, hit := range []bool{s.Length, s.Upper, s.Lower, s.Digit, s.Special} {
		if hit {
			s.Score++
		}
	}
	switch {
	case s.Score <= 2:
		s.Label = "weak"
	case s.Score == 3:
		s.Label = "medium"
	case s.Score == 4:
		s.Label = "strong"
	default:
		s.Label = "excellent"
	}
	return s
}

// AuthService drives the login and signup flows against the upstream backend
// and owns the stored session for each portal client.
type AuthService struct {
	upstream ports.Upstream
	store    ports.SessionStore
	prefs    ports.PreferenceStore
	legacy   bool
	log      zerolog.Logger

	mu       sync.Mutex
	attempts map[string]int
}

// NewAuthService builds the auth flow controller. legacy switches credential
// exchange to the form-encoded OAuth token endpoint of older backends.
func NewAuthService(up ports.Upstream, store ports.SessionStore, prefs ports.PreferenceStore, legacy bool, log zerolog.Logger) *AuthService {
	return &AuthService{
		upstream: up,
		store:    store,
		prefs:    prefs,
		legacy:   legacy,
		log:      log,
		attempts: make(map[string]int),
	}
}

const rememberPrefix = "remember:"

// Login validates the form locally, exchanges credentials upstream, and
// persists the resulting session. Upstream rejections are mapped onto the
// credential error taxonomy; everything else passes through.
func (a *AuthService) Login(ctx context.Context, sessionKey string, form ports.LoginForm) (ports.AuthOutcome, error) {
	identifier := strings.TrimSpace(form.Identifier)
	if identifier == "" || form.Password == "" {
		return ports.AuthOutcome{}, domain.ErrMissingFields
	}

	var (
		result ports.AuthResult
		err    error
	)
	if a.legacy {
		result, err = a.upstream.LegacyLogin(ctx, identifier, form.Password)
	} else {
		result, err = a.upstream.Login(ctx, ports.LoginInput{
			Identifier: identifier,
			Password:   form.Password,
			Remember:   form.Remember,
		})
	}
	if err != nil {
		mapped := mapAuthStatus(err)
		attempts := 0
		if errors.Is(mapped, domain.ErrInvalidCredentials) {
			attempts = a.recordFailure(identifier)
		}
		a.log.Info().Str("identifier", identifier).Int("attempts", attempts).Err(mapped).Msg("login rejected")
		return ports.AuthOutcome{Attempts: attempts}, mapped
	}

	a.resetFailures(identifier)

	sess := domain.Session{Token: result.Token, User: result.User, CreatedAt: time.Now()}
	if err := a.store.Write(ctx, sessionKey, &sess); err != nil {
		return ports.AuthOutcome{}, fmt.Errorf("persist session: %w", err)
	}
	if form.Remember {
		if err := a.prefs.WritePreference(ctx, rememberPrefix+sessionKey, identifier); err != nil {
			a.log.Warn().Err(err).Msg("remember identifier not stored")
		}
	} else {
		_ = a.prefs.ClearPreference(ctx, rememberPrefix+sessionKey)
	}

	a.log.Info().Str("user_id", result.User.ID).Str("role", result.User.Role).Msg("login succeeded")
	return ports.AuthOutcome{Session: sess, Redirect: domain.LandingRoute(result.User.Role)}, nil
}

// Signup validates the accumulated wizard state locally, registers the
// account upstream, and signs the new user straight in.
func (a *AuthService) Signup(ctx context.Context, sessionKey string, form ports.SignupForm) (ports.AuthOutcome, error) {
	if err := validateSignup(form); err != nil {
		return ports.AuthOutcome{}, err
	}

	result, err := a.upstream.Signup(ctx, ports.SignupInput{
		Role:            form.Role,
		FullName:        strings.TrimSpace(form.Name),
		UniversityName:  strings.TrimSpace(form.University),
		MobileNumber:    strings.TrimSpace(form.Mobile),
		Email:           strings.TrimSpace(form.Email),
		Department:      strings.TrimSpace(form.Department),
		Password:        form.Password,
		ConfirmPassword: form.ConfirmPassword,
	})
	if err != nil {
		mapped := mapSignupStatus(err)
		a.log.Info().Str("email", form.Email).Err(mapped).Msg("signup rejected")
		return ports.AuthOutcome{}, mapped
	}

	sess := domain.Session{Token: result.Token, User: result.User, CreatedAt: time.Now()}
	if err := a.store.Write(ctx, sessionKey, &sess); err != nil {
		return ports.AuthOutcome{}, fmt.Errorf("persist session: %w", err)
	}

	a.log.Info().Str("user_id", result.User.ID).Str("role", result.User.Role).Msg("signup succeeded")
	return ports.AuthOutcome{Session: sess, Redirect: domain.LandingRoute(result.User.Role)}, nil
}

// Logout destroys the stored session. The remembered identifier survives so
// the next login form can be prefilled.
func (a *AuthService) Logout(ctx context.Context, sessionKey string) error {
	return a.store.Clear(ctx, sessionKey)
}

// FailedAttempts returns the consecutive rejected-credential count for an
// identifier since its last successful login.
func (a *AuthService) FailedAttempts(identifier string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.attempts[strings.ToLower(strings.TrimSpace(identifier))]
}

// RememberedIdentifier returns the identifier stored by a remember-me login,
// or "" when none was kept.
func (a *AuthService) RememberedIdentifier(ctx context.Context, sessionKey string) string {
	v, err := a.prefs.ReadPreference(ctx, rememberPrefix+sessionKey)
	if err != nil {
		a.log.Warn().Err(err).Msg("remembered identifier read failed")
		return ""
	}
	return v
}

func (a *AuthService) recordFailure(identifier string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	k := strings.ToLower(identifier)
	a.attempts[k]++
	return a.attempts[k]
}

func (a *AuthService) resetFailures(identifier string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.attempts, strings.ToLower(identifier))
}

// validateSignup enforces the wizard's local gates before anything is sent
// upstream: required fields, shape checks, password policy, terms.
func validateSignup(form ports.SignupForm) error {
	required := []string{form.Role, form.Name, form.Email, form.Mobile, form.University, form.Password, form.ConfirmPassword}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return domain.ErrMissingFields
		}
	}
	if !domain.ValidRole(form.Role) {
		return fmt.Errorf("%w: unknown role %q", domain.ErrFieldValidation, form.Role)
	}
	// Teachers carry an extra identity field.
	if form.Role == domain.RoleTeacher && strings.TrimSpace(form.Department) == "" {
		return domain.ErrMissingFields
	}
	if !emailPattern.MatchString(strings.TrimSpace(form.Email)) {
		return fmt.Errorf("%w: invalid email", domain.ErrFieldValidation)
	}
	if !mobilePattern.MatchString(strings.TrimSpace(form.Mobile)) {
		return fmt.Errorf("%w: invalid mobile number", domain.ErrFieldValidation)
	}
	if Strength(form.Password).Score < 3 {
		return domain.ErrWeakPassword
	}
	if form.Password != form.ConfirmPassword {
		return fmt.Errorf("%w: passwords do not match", domain.ErrFieldValidation)
	}
	if !form.Terms {
		return domain.ErrTermsNotAccepted
	}
	return nil
}

// mapAuthStatus translates upstream login rejections into the credential
// error taxonomy.
func mapAuthStatus(err error) error {
	var se *domain.UpstreamStatusError
	if !errors.As(err, &se) {
		return err
	}
	switch se.Code {
	case http.StatusUnauthorized:
		return domain.ErrInvalidCredentials
	case http.StatusLocked:
		return domain.ErrAccountLocked
	case http.StatusForbidden:
		return domain.ErrAccountNotActivated
	default:
		return err
	}
}

// mapSignupStatus translates upstream signup rejections.
func mapSignupStatus(err error) error {
	var se *domain.UpstreamStatusError
	if !errors.As(err, &se) {
		return err
	}
	switch se.Code {
	case http.StatusConflict:
		return domain.ErrDuplicateAccount
	case http.StatusBadRequest:
		if se.Message != "" {
			return fmt.Errorf("%w: %s", domain.ErrFieldValidation, se.Message)
		}
		return domain.ErrFieldValidation
	default:
		return err
	}
}
