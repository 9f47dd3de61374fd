package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/dentalcare/clinic-portal/internal/api/metrics"
	"github.com/dentalcare/clinic-portal/internal/core/domain"
	"github.com/dentalcare/clinic-portal/internal/core/ports"
)

// LoginThrottle guards the login endpoint against repeated failures (Redis).
type LoginThrottle interface {
	Blocked(ctx context.Context, phone string) (bool, error)
	RecordFailure(ctx context.Context, phone string) error
	Reset(ctx context.Context, phone string) error
}

// AuditSink enqueues activity events without blocking the request path.
type AuditSink interface {
	Enqueue(event ports.AuditEventInput)
}

// AuthService implements login and logout against the user store and the
// session store.
type AuthService struct {
	repo      ports.AuthRepository
	sessions  ports.SessionStore
	throttle  LoginThrottle
	audit     AuditSink
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(
	repo ports.AuthRepository,
	sessions ports.SessionStore,
	throttle LoginThrottle,
	audit AuditSink,
	jwtSecret string,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		sessions:  sessions,
		throttle:  throttle,
		audit:     audit,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Login verifies the phone/password pair and, on success, mints a bearer
// token and persists the session atomically. The returned result reports
// degraded mode when the session only reached the non-durable tier.
func (s *AuthService) Login(ctx context.Context, phone, password string) (*ports.LoginResult, error) {
	if phone == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.Blocked(ctx, phone)
		if err != nil {
			s.log.Warn().Err(err).Str("phone", phone).Msg("throttle check failed, allowing login")
		} else if blocked {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.failedAttempt(ctx, phone)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.failedAttempt(ctx, phone)
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Active {
		metrics.LoginsTotal.WithLabelValues("inactive").Inc()
		return nil, domain.ErrUserInactive
	}

	sid := newSessionID()
	token, err := s.generateToken(user, sid)
	if err != nil {
		return nil, err
	}

	principal := user.Principal()
	degraded, err := s.sessions.Set(ctx, sid, &principal, token)
	if err != nil {
		return nil, err
	}
	if degraded {
		s.log.Warn().Str("phone", phone).Msg("session stored in fallback tier only")
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, phone); err != nil {
			s.log.Warn().Err(err).Str("phone", phone).Msg("failed to reset login throttle")
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	if s.audit != nil {
		s.audit.Enqueue(ports.AuditEventInput{
			Actor:     phone,
			Action:    domain.AuditActionLogin,
			ClinicID:  user.ClinicID,
			Timestamp: time.Now().UTC(),
		})
	}

	s.log.Info().Str("phone", phone).Str("role", string(user.Role)).Msg("login succeeded")

	return &ports.LoginResult{
		SessionID:   sid,
		AccessToken: token,
		User:        principal,
		Degraded:    degraded,
	}, nil
}

// Register creates a new portal account with the password hashed at rest.
// Admin accounts carry no clinic scope; every other role requires one.
func (s *AuthService) Register(ctx context.Context, in ports.CreateUserInput) (*domain.Principal, error) {
	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if in.Role != domain.RoleAdmin && in.ClinicID == nil {
		return nil, domain.ErrClinicRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FullName:     in.FullName,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         in.Role,
		ClinicID:     in.ClinicID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("phone", created.Phone).Str("role", string(created.Role)).Msg("user created")

	principal := created.Principal()
	return &principal, nil
}

// Logout clears the session from every storage tier. No server round-trip
// beyond the session store itself.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	session, err := s.sessions.Get(ctx, sessionID)
	if err == nil && session.Authenticated() && s.audit != nil {
		s.audit.Enqueue(ports.AuditEventInput{
			Actor:     session.Principal.Phone,
			Action:    domain.AuditActionLogout,
			ClinicID:  session.Principal.ClinicID,
			Timestamp: time.Now().UTC(),
		})
	}
	return s.sessions.Clear(ctx, sessionID)
}

func (s *AuthService) failedAttempt(ctx context.Context, phone string) {
	metrics.LoginsTotal.WithLabelValues("rejected").Inc()
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, phone); err != nil {
			s.log.Warn().Err(err).Str("phone", phone).Msg("failed to record login failure")
		}
	}
	if s.audit != nil {
		s.audit.Enqueue(ports.AuditEventInput{
			Actor:     phone,
			Action:    domain.AuditActionLoginFailed,
			Timestamp: time.Now().UTC(),
		})
	}
}

func (s *AuthService) generateToken(user *domain.User, sid string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.Phone,
		"name": user.FullName,
		"role": string(user.Role),
		"sid":  sid,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	if user.ClinicID != nil {
		claims["clinic_id"] = *user.ClinicID
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// newSessionID returns a random 16-byte hex session id.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().UTC().Format(time.RFC3339Nano)))
	}
	return hex.EncodeToString(b)
}
