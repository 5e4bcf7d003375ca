package ports

import (
	"context"

	"github.com/mercatto/catalog-api/internal/core/domain"
)

// UserRepository is the credential store. Email lookups are exact-match and
// case sensitive. Uniqueness pre-checks in services are a UX nicety; the
// store's unique index on email is the authoritative guarantee, and its
// violation surfaces as domain.ErrEmailTaken.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	Delete(ctx context.Context, id uint) error
}
