package ports

import (
	"context"

	"github.com/mercatto/catalog-api/internal/core/domain"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// AuthService covers the account credential lifecycle. Register returns the
// created user together with a freshly issued token; Login returns the token
// first, matching the original wire shape.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, input LoginInput) (string, *domain.User, error)
	ChangePassword(ctx context.Context, userID uint, current, next string) error
}
