package ports

import (
	"context"

	"github.com/mercatto/catalog-api/internal/core/domain"
)

// CategoryRepository persists categories. Name uniqueness is backed by a
// unique index; violations surface as domain.ErrCategoryNameTaken.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	FindByID(ctx context.Context, id uint) (*domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	CountActiveProducts(ctx context.Context, id uint) (int64, error)
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
}
