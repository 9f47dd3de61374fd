package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
	"github.com/dentalcare/clinic-portal/internal/core/ports"
)

const testSecret = "test-secret"

type stubAuthRepo struct {
	user      *domain.User
	err       error
	created   *domain.User
	createErr error
}

func (r *stubAuthRepo) FindByPhone(_ context.Context, _ string) (*domain.User, error) {
	return r.user, r.err
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.created = user
	out := *user
	out.ID = 42
	return &out, nil
}

type stubSessionStore struct {
	sessions map[string]domain.Session
	degraded bool
	setErr   error
	cleared  []string
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Get(_ context.Context, sid string) (domain.Session, error) {
	return s.sessions[sid], nil
}

func (s *stubSessionStore) Set(_ context.Context, sid string, principal *domain.Principal, token string) (bool, error) {
	if s.setErr != nil {
		return false, s.setErr
	}
	s.sessions[sid] = domain.Session{Principal: principal, Token: token}
	return s.degraded, nil
}

func (s *stubSessionStore) Clear(_ context.Context, sid string) error {
	delete(s.sessions, sid)
	s.cleared = append(s.cleared, sid)
	return nil
}

type stubThrottle struct {
	blocked  bool
	failures []string
	resets   []string
}

func (t *stubThrottle) Blocked(_ context.Context, _ string) (bool, error) { return t.blocked, nil }

func (t *stubThrottle) RecordFailure(_ context.Context, phone string) error {
	t.failures = append(t.failures, phone)
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, phone string) error {
	t.resets = append(t.resets, phone)
	return nil
}

type stubAudit struct {
	events []ports.AuditEventInput
}

func (a *stubAudit) Enqueue(event ports.AuditEventInput) {
	a.events = append(a.events, event)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func testUser(t *testing.T, password string) *domain.User {
	clinicID := int64(3)
	return &domain.User{
		ID:           1,
		FullName:     "Dana Seitova",
		Phone:        "+77001234567",
		PasswordHash: hashPassword(t, password),
		Role:         domain.RoleDoctor,
		ClinicID:     &clinicID,
		Active:       true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := &stubAuthRepo{user: testUser(t, "s3cret")}
	sessions := newStubSessionStore()
	throttle := &stubThrottle{}
	audit := &stubAudit{}
	svc := NewAuthService(repo, sessions, throttle, audit, testSecret, time.Hour, zerolog.Nop())

	result, err := svc.Login(context.Background(), "+77001234567", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.SessionID == "" || result.AccessToken == "" {
		t.Fatalf("expected session id and token, got %+v", result)
	}
	if result.Degraded {
		t.Fatal("expected non-degraded result")
	}
	if result.User.Role != domain.RoleDoctor {
		t.Fatalf("unexpected role: %s", result.User.Role)
	}

	stored := sessions.sessions[result.SessionID]
	if !stored.Authenticated() {
		t.Fatal("expected a complete session record")
	}
	if stored.Token != result.AccessToken {
		t.Fatal("stored token does not match issued token")
	}

	if len(throttle.resets) != 1 {
		t.Fatalf("expected throttle reset after success, got %d", len(throttle.resets))
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditActionLogin {
		t.Fatalf("expected a login audit event, got %+v", audit.events)
	}
}

func TestAuthService_Login_TokenClaims(t *testing.T) {
	repo := &stubAuthRepo{user: testUser(t, "s3cret")}
	svc := NewAuthService(repo, newStubSessionStore(), nil, nil, testSecret, time.Hour, zerolog.Nop())

	result, err := svc.Login(context.Background(), "+77001234567", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	parsed, err := jwt.Parse(result.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != "+77001234567" {
		t.Fatalf("unexpected sub claim: %v", claims["sub"])
	}
	if claims["role"] != string(domain.RoleDoctor) {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
	if claims["sid"] != result.SessionID {
		t.Fatalf("sid claim %v does not match session id %s", claims["sid"], result.SessionID)
	}
	if int64(claims["clinic_id"].(float64)) != 3 {
		t.Fatalf("unexpected clinic_id claim: %v", claims["clinic_id"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := &stubAuthRepo{user: testUser(t, "s3cret")}
	throttle := &stubThrottle{}
	audit := &stubAudit{}
	svc := NewAuthService(repo, newStubSessionStore(), throttle, audit, testSecret, time.Hour, zerolog.Nop())

	_, err := svc.Login(context.Background(), "+77001234567", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(throttle.failures) != 1 {
		t.Fatalf("expected one recorded failure, got %d", len(throttle.failures))
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditActionLoginFailed {
		t.Fatalf("expected a login_failed audit event, got %+v", audit.events)
	}
}

func TestAuthService_Login_UnknownPhone(t *testing.T) {
	repo := &stubAuthRepo{err: domain.ErrUserNotFound}
	svc := NewAuthService(repo, newStubSessionStore(), nil, nil, testSecret, time.Hour, zerolog.Nop())

	// An unknown account must be indistinguishable from a bad password.
	_, err := svc.Login(context.Background(), "+77000000000", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	user := testUser(t, "s3cret")
	user.Active = false
	svc := NewAuthService(&stubAuthRepo{user: user}, newStubSessionStore(), nil, nil, testSecret, time.Hour, zerolog.Nop())

	_, err := svc.Login(context.Background(), "+77001234567", "s3cret")
	if !errors.Is(err, domain.ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := &stubAuthRepo{user: testUser(t, "s3cret")}
	svc := NewAuthService(repo, newStubSessionStore(), &stubThrottle{blocked: true}, nil, testSecret, time.Hour, zerolog.Nop())

	_, err := svc.Login(context.Background(), "+77001234567", "s3cret")
	if !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc := NewAuthService(&stubAuthRepo{}, newStubSessionStore(), nil, nil, testSecret, time.Hour, zerolog.Nop())

	for _, tc := range []struct{ phone, password string }{
		{"", "pass"},
		{"+77001234567", ""},
		{"", ""},
	} {
		if _, err := svc.Login(context.Background(), tc.phone, tc.password); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("phone=%q password=%q: expected ErrInvalidCredentials, got %v", tc.phone, tc.password, err)
		}
	}
}

func TestAuthService_Login_DegradedSessionStore(t *testing.T) {
	repo := &stubAuthRepo{user: testUser(t, "s3cret")}
	sessions := newStubSessionStore()
	sessions.degraded = true
	svc := NewAuthService(repo, sessions, nil, nil, testSecret, time.Hour, zerolog.Nop())

	result, err := svc.Login(context.Background(), "+77001234567", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !result.Degraded {
		t.Fatal("expected Degraded=true when session only reached the fallback tier")
	}
}

func TestAuthService_Logout(t *testing.T) {
	repo := &stubAuthRepo{user: testUser(t, "s3cret")}
	sessions := newStubSessionStore()
	audit := &stubAudit{}
	svc := NewAuthService(repo, sessions, nil, audit, testSecret, time.Hour, zerolog.Nop())

	result, err := svc.Login(context.Background(), "+77001234567", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), result.SessionID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if len(sessions.cleared) != 1 || sessions.cleared[0] != result.SessionID {
		t.Fatalf("expected session %s cleared, got %v", result.SessionID, sessions.cleared)
	}
	if got := sessions.sessions[result.SessionID]; got.Authenticated() {
		t.Fatal("session still present after logout")
	}
	if len(audit.events) != 2 || audit.events[1].Action != domain.AuditActionLogout {
		t.Fatalf("expected a logout audit event, got %+v", audit.events)
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := &stubAuthRepo{}
	svc := NewAuthService(repo, newStubSessionStore(), nil, nil, testSecret, time.Hour, zerolog.Nop())

	clinicID := int64(2)
	principal, err := svc.Register(context.Background(), ports.CreateUserInput{
		FullName: "Aigerim Bekova",
		Phone:    "+77009876543",
		Password: "s3cret-pass",
		Role:     domain.RoleNurse,
		ClinicID: &clinicID,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if principal.ID != 42 || principal.Role != domain.RoleNurse || !principal.Active {
		t.Fatalf("unexpected principal: %+v", principal)
	}

	if repo.created.PasswordHash == "s3cret-pass" {
		t.Fatal("password must be hashed before it reaches storage")
	}
	if bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("s3cret-pass")) != nil {
		t.Fatal("stored hash does not verify against the original password")
	}
	if !repo.created.Active {
		t.Fatal("new accounts must be active")
	}
}

func TestAuthService_Register_AdminWithoutClinic(t *testing.T) {
	repo := &stubAuthRepo{}
	svc := NewAuthService(repo, newStubSessionStore(), nil, nil, testSecret, time.Hour, zerolog.Nop())

	principal, err := svc.Register(context.Background(), ports.CreateUserInput{
		FullName: "Head Office",
		Phone:    "+77000000001",
		Password: "s3cret-pass",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if principal.ClinicID != nil {
		t.Fatalf("admin accounts carry no clinic scope, got %+v", principal.ClinicID)
	}
}

func TestAuthService_Register_NonAdminNeedsClinic(t *testing.T) {
	svc := NewAuthService(&stubAuthRepo{}, newStubSessionStore(), nil, nil, testSecret, time.Hour, zerolog.Nop())

	_, err := svc.Register(context.Background(), ports.CreateUserInput{
		FullName: "Dana Seitova",
		Phone:    "+77001234567",
		Password: "s3cret-pass",
		Role:     domain.RoleDoctor,
	})
	if !errors.Is(err, domain.ErrClinicRequired) {
		t.Fatalf("expected ErrClinicRequired, got %v", err)
	}
}

func TestAuthService_Register_UnknownRole(t *testing.T) {
	svc := NewAuthService(&stubAuthRepo{}, newStubSessionStore(), nil, nil, testSecret, time.Hour, zerolog.Nop())

	_, err := svc.Register(context.Background(), ports.CreateUserInput{
		FullName: "Nobody",
		Phone:    "+77001234567",
		Password: "s3cret-pass",
		Role:     domain.Role("janitor"),
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Register_DuplicatePhone(t *testing.T) {
	repo := &stubAuthRepo{createErr: domain.ErrUserExists}
	svc := NewAuthService(repo, newStubSessionStore(), nil, nil, testSecret, time.Hour, zerolog.Nop())

	clinicID := int64(2)
	_, err := svc.Register(context.Background(), ports.CreateUserInput{
		FullName: "Dana Seitova",
		Phone:    "+77001234567",
		Password: "s3cret-pass",
		Role:     domain.RoleDoctor,
		ClinicID: &clinicID,
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Logout_UnknownSession(t *testing.T) {
	svc := NewAuthService(&stubAuthRepo{}, newStubSessionStore(), nil, &stubAudit{}, testSecret, time.Hour, zerolog.Nop())

	// Clearing an unknown session id is a no-op, not an error.
	if err := svc.Logout(context.Background(), "missing"); err != nil {
		t.Fatalf("logout of unknown session failed: %v", err)
	}
}
