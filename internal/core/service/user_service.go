package service

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/rs/zerolog"

	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

// UserService covers profile and administrative user management. Role and
// Active changes are gated by the handlers (admin principal required) before
// they reach Update.
type UserService struct {
	users   ports.UserRepository
	audit   ports.AuditRecorder
	history ports.AuditRepository
	logger  zerolog.Logger
}

func NewUserService(users ports.UserRepository, audit ports.AuditRecorder, history ports.AuditRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, audit: audit, history: history, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id uint, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if l := len(*input.Name); l < 2 || l > 100 {
			return nil, fmt.Errorf("%w: name must be between 2 and 100 characters", domain.ErrValidation)
		}
		user.Name = *input.Name
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := mail.ParseAddress(*input.Email); err != nil {
			return nil, fmt.Errorf("%w: email is not valid", domain.ErrValidation)
		}
		// Pre-check excluding this user; the unique index remains authoritative.
		if other, err := s.users.FindByEmail(ctx, *input.Email); err == nil && other != nil && other.ID != id {
			return nil, domain.ErrEmailTaken
		}
		user.Email = *input.Email
	}

	if input.Role != nil && *input.Role != user.Role {
		if *input.Role != domain.RoleAdmin && *input.Role != domain.RoleUser {
			return nil, fmt.Errorf("%w: unknown role", domain.ErrValidation)
		}
		user.Role = *input.Role
		s.record(id, domain.AuditRoleChange, *input.Role)
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.record(id, domain.AuditProfileUpdate, "")
	return user, nil
}

// Delete removes a user. Admins cannot delete their own account; disabling
// via the Active flag is the way to retire the acting admin.
func (s *UserService) Delete(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return domain.ErrSelfDelete
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.record(id, domain.AuditUserDelete, fmt.Sprintf("by %d", actorID))
	s.logger.Info().Uint("user_id", id).Uint("actor_id", actorID).Msg("user deleted")
	return nil
}

// Activity returns the most recent audit entries for one user, newest first.
func (s *UserService) Activity(ctx context.Context, id uint, limit int) ([]domain.AuditEntry, error) {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if s.history == nil {
		return nil, nil
	}
	return s.history.ListByUser(ctx, id, limit)
}

func (s *UserService) record(userID uint, action, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{UserID: userID, Action: action, Detail: detail})
}
