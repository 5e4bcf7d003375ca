package ports

import (
	"context"

	"github.com/mercatto/catalog-api/internal/core/domain"
)

type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]domain.Product, error)
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
}
