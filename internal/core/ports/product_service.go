package ports

import (
	"context"

	"github.com/mercatto/catalog-api/internal/core/domain"
)

// ProductInput carries product fields for create and update. Pointer fields
// distinguish "not sent" from zero values on update.
type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Discount    float64
	Stock       int
	SKU         string
	Weight      *float64
	Dimensions  string
	Featured    *bool
	CategoryID  uint
}

type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id uint) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id uint, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id uint) error
}
