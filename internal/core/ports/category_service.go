package ports

import (
	"context"

	"github.com/mercatto/catalog-api/internal/core/domain"
)

type CategoryInput struct {
	Name        string
	Description string
}

type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id uint) (*domain.Category, error)
	Products(ctx context.Context, id uint) ([]domain.Product, error)
	Create(ctx context.Context, input CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id uint, input CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id uint) error
}
