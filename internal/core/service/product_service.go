package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

type ProductService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	audit      ports.AuditRecorder
	logger     zerolog.Logger
}

func NewProductService(products ports.ProductRepository, categories ports.CategoryRepository, audit ports.AuditRecorder, logger zerolog.Logger) *ProductService {
	return &ProductService{products: products, categories: categories, audit: audit, logger: logger}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id uint) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	sku := input.SKU
	if sku == "" {
		sku = generateSKU()
	}

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Discount:    input.Discount,
		Stock:       input.Stock,
		SKU:         sku,
		Weight:      input.Weight,
		Dimensions:  input.Dimensions,
		CategoryID:  input.CategoryID,
		Active:      true,
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.record(fmt.Sprintf("created %q", product.Name))
	s.logger.Info().Uint("product_id", product.ID).Str("sku", product.SKU).Msg("product created")
	return s.products.FindByID(ctx, product.ID)
}

func (s *ProductService) Update(ctx context.Context, id uint, input ports.ProductInput) (*domain.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Discount = input.Discount
	product.Stock = input.Stock
	product.Weight = input.Weight
	product.Dimensions = input.Dimensions
	product.CategoryID = input.CategoryID
	if input.SKU != "" {
		product.SKU = input.SKU
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	s.record(fmt.Sprintf("updated %d", id))
	return s.products.FindByID(ctx, id)
}

// Delete deactivates a product. Idempotent on an already-inactive product.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !product.Active {
		return nil
	}

	product.Active = false
	if err := s.products.Update(ctx, product); err != nil {
		return err
	}
	s.record(fmt.Sprintf("deactivated %d", id))
	return nil
}

func (s *ProductService) validate(ctx context.Context, input ports.ProductInput) error {
	if l := len(input.Name); l < 2 || l > 200 {
		return fmt.Errorf("%w: name must be between 2 and 200 characters", domain.ErrValidation)
	}
	if l := len(input.Description); l < 10 || l > 2000 {
		return fmt.Errorf("%w: description must be between 10 and 2000 characters", domain.ErrValidation)
	}
	if input.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
	}
	if input.Discount < 0 || input.Discount > 100 {
		return fmt.Errorf("%w: discount must be between 0 and 100", domain.ErrValidation)
	}
	if input.Price*(1-input.Discount/100) < 0 {
		return fmt.Errorf("%w: discounted price cannot be negative", domain.ErrValidation)
	}
	if input.Stock < 0 {
		return fmt.Errorf("%w: stock cannot be negative", domain.ErrValidation)
	}
	if input.Weight != nil && *input.Weight < 0 {
		return fmt.Errorf("%w: weight cannot be negative", domain.ErrValidation)
	}

	category, err := s.categories.FindByID(ctx, input.CategoryID)
	if err != nil {
		return err
	}
	if !category.Active {
		return fmt.Errorf("%w: category is inactive", domain.ErrValidation)
	}
	return nil
}

func (s *ProductService) record(detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{Action: domain.AuditProductWrite, Detail: detail})
}

// generateSKU returns a reference in the format SKU-XXXXXXXX.
func generateSKU() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("SKU-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("SKU-%08X", b)
}
