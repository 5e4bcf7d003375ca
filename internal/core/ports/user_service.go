package ports

import (
	"context"

	"github.com/mercatto/catalog-api/internal/core/domain"
)

// UpdateUserInput carries optional field changes. Role and Active are only
// honoured when the handler has already established an admin principal.
type UpdateUserInput struct {
	Name   *string
	Email  *string
	Role   *string
	Active *bool
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id uint) (*domain.User, error)
	Update(ctx context.Context, id uint, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actorID, id uint) error
	Activity(ctx context.Context, id uint, limit int) ([]domain.AuditEntry, error)
}
