package ports

import "github.com/mercatto/catalog-api/internal/core/domain"

// TokenService issues and verifies signed bearer tokens. Verification
// failures satisfy errors.Is(err, domain.ErrInvalidToken) regardless of
// cause; expiry is additionally tagged with domain.ErrTokenExpired for logs.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (*domain.TokenClaims, error)
}
