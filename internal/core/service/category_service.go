package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

type CategoryService struct {
	categories ports.CategoryRepository
	products   ports.ProductRepository
	audit      ports.AuditRecorder
	logger     zerolog.Logger
}

func NewCategoryService(categories ports.CategoryRepository, products ports.ProductRepository, audit ports.AuditRecorder, logger zerolog.Logger) *CategoryService {
	return &CategoryService{categories: categories, products: products, audit: audit, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*domain.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CategoryService) Products(ctx context.Context, id uint) ([]domain.Product, error) {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.products.ListByCategory(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, input ports.CategoryInput) (*domain.Category, error) {
	if err := validateCategory(input); err != nil {
		return nil, err
	}

	if existing, err := s.categories.FindByName(ctx, input.Name); err == nil && existing != nil {
		return nil, domain.ErrCategoryNameTaken
	}

	category := &domain.Category{
		Name:        input.Name,
		Description: input.Description,
		Active:      true,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	s.record(domain.AuditCategoryWrite, fmt.Sprintf("created %q", category.Name))
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, input ports.CategoryInput) (*domain.Category, error) {
	if err := validateCategory(input); err != nil {
		return nil, err
	}

	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != category.Name {
		if other, err := s.categories.FindByName(ctx, input.Name); err == nil && other != nil && other.ID != id {
			return nil, domain.ErrCategoryNameTaken
		}
	}

	category.Name = input.Name
	category.Description = input.Description
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	s.record(domain.AuditCategoryWrite, fmt.Sprintf("updated %d", id))
	return category, nil
}

// Delete deactivates a category. It fails while any active product still
// references the category, and is a no-op (success) when the category is
// already inactive, so retries are idempotent.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !category.Active {
		return nil
	}

	count, err := s.categories.CountActiveProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCategoryHasProducts
	}

	category.Active = false
	if err := s.categories.Update(ctx, category); err != nil {
		return err
	}
	s.record(domain.AuditCategoryWrite, fmt.Sprintf("deactivated %d", id))
	return nil
}

func (s *CategoryService) record(action, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEntry{Action: action, Detail: detail})
}

func validateCategory(input ports.CategoryInput) error {
	if l := len(input.Name); l < 2 || l > 100 {
		return fmt.Errorf("%w: name must be between 2 and 100 characters", domain.ErrValidation)
	}
	if len(input.Description) > 500 {
		return fmt.Errorf("%w: description must be at most 500 characters", domain.ErrValidation)
	}
	return nil
}
