package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/rs/zerolog"

	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

const minPasswordLen = 6

// AuthService implements registration, login and password changes. Hashing
// lives here, at the service boundary, so repositories only ever see hashes.
type AuthService struct {
	users   ports.UserRepository
	tokens  ports.TokenService
	limiter ports.LoginLimiter
	audit   ports.AuditRecorder
	logger  zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, limiter ports.LoginLimiter, audit ports.AuditRecorder, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, limiter: limiter, audit: audit, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, string, error) {
	if err := validateRegistration(input); err != nil {
		return nil, "", err
	}

	// UX pre-check only; the unique index on email is authoritative and the
	// repository maps its violation to ErrEmailTaken.
	if existing, err := s.users.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, "", domain.ErrEmailTaken
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}

	s.record(user.ID, domain.AuditRegister, user.Email)
	s.logger.Info().Uint("user_id", user.ID).Str("email", user.Email).Msg("user registered")
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (string, *domain.User, error) {
	if input.Email == "" || input.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		blocked, err := s.limiter.TooMany(ctx, input.Email)
		if err != nil {
			s.logger.Warn().Err(err).Msg("login limiter unavailable")
		} else if blocked {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same failure as a wrong password: never reveal which.
			s.failLogin(ctx, 0, input.Email)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !VerifyPassword(input.Password, user.PasswordHash) {
		s.failLogin(ctx, user.ID, input.Email)
		return "", nil, domain.ErrInvalidCredentials
	}

	if !user.Active {
		return "", nil, domain.ErrAccountDisabled
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record last login")
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, input.Email); err != nil {
			s.logger.Warn().Err(err).Msg("login limiter reset failed")
		}
	}

	s.record(user.ID, domain.AuditLogin, user.Email)
	return token, user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !VerifyPassword(current, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	if len(next) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}

	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.record(userID, domain.AuditPasswordChange, "")
	return nil
}

func (s *AuthService) failLogin(ctx context.Context, userID uint, email string) {
	if s.limiter != nil {
		if err := s.limiter.RecordFailure(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("login limiter record failed")
		}
	}
	s.record(userID, domain.AuditLoginFailed, email)
}

func (s *AuthService) record(userID uint, action, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{UserID: userID, Action: action, Detail: detail})
}

func validateRegistration(input ports.RegisterInput) error {
	if l := len(input.Name); l < 2 || l > 100 {
		return fmt.Errorf("%w: name must be between 2 and 100 characters", domain.ErrValidation)
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return fmt.Errorf("%w: email is not valid", domain.ErrValidation)
	}
	if len(input.Password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}
	return nil
}
