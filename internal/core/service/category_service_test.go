package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

type stubCategoryRepo struct {
	categories map[uint]*domain.Category
	products   *stubProductRepo
	nextID     uint
}

func newStubCategoryRepo(products *stubProductRepo) *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uint]*domain.Category), products: products, nextID: 1}
}

func (r *stubCategoryRepo) List(context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uint) (*domain.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*domain.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) CountActiveProducts(_ context.Context, id uint) (int64, error) {
	var count int64
	for _, p := range r.products.products {
		if p.CategoryID == id && p.Active {
			count++
		}
	}
	return count, nil
}

func (r *stubCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	for _, c := range r.categories {
		if c.Name == category.Name {
			return domain.ErrCategoryNameTaken
		}
	}
	category.ID = r.nextID
	r.nextID++
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *stubCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func newCategoryService() (*CategoryService, *stubCategoryRepo, *stubProductRepo) {
	products := newStubProductRepo()
	categories := newStubCategoryRepo(products)
	svc := NewCategoryService(categories, products, nil, zerolog.Nop())
	return svc, categories, products
}

func TestCategoryService_Create(t *testing.T) {
	svc, _, _ := newCategoryService()

	category, err := svc.Create(context.Background(), ports.CategoryInput{Name: "Books", Description: "printed things"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !category.Active {
		t.Fatalf("expected new category to be active")
	}

	if _, err := svc.Create(context.Background(), ports.CategoryInput{Name: "Books"}); !errors.Is(err, domain.ErrCategoryNameTaken) {
		t.Fatalf("expected ErrCategoryNameTaken, got %v", err)
	}
	if _, err := svc.Create(context.Background(), ports.CategoryInput{Name: "B"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for short name, got %v", err)
	}
}

func TestCategoryService_Update_NameCollision(t *testing.T) {
	svc, _, _ := newCategoryService()

	books, _ := svc.Create(context.Background(), ports.CategoryInput{Name: "Books"})
	_, _ = svc.Create(context.Background(), ports.CategoryInput{Name: "Games"})

	if _, err := svc.Update(context.Background(), books.ID, ports.CategoryInput{Name: "Games"}); !errors.Is(err, domain.ErrCategoryNameTaken) {
		t.Fatalf("expected ErrCategoryNameTaken, got %v", err)
	}
	// Renaming to its own name is not a collision.
	if _, err := svc.Update(context.Background(), books.ID, ports.CategoryInput{Name: "Books", Description: "updated"}); err != nil {
		t.Fatalf("self-rename failed: %v", err)
	}
}

func TestCategoryService_Delete_RestrictedByActiveProducts(t *testing.T) {
	svc, categories, products := newCategoryService()

	category, _ := svc.Create(context.Background(), ports.CategoryInput{Name: "Books"})
	products.add(&domain.Product{Name: "Go in Action", CategoryID: category.ID, Active: true})

	if err := svc.Delete(context.Background(), category.ID); !errors.Is(err, domain.ErrCategoryHasProducts) {
		t.Fatalf("expected ErrCategoryHasProducts, got %v", err)
	}

	// Deactivating the product unblocks the category delete.
	for _, p := range products.products {
		p.Active = false
	}
	if err := svc.Delete(context.Background(), category.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if categories.categories[category.ID].Active {
		t.Fatalf("expected category to be deactivated, not removed")
	}

	// Retrying against an already-inactive category is a no-op success.
	if err := svc.Delete(context.Background(), category.ID); err != nil {
		t.Fatalf("repeat delete should be idempotent, got %v", err)
	}
}

func TestCategoryService_Delete_NotFound(t *testing.T) {
	svc, _, _ := newCategoryService()
	if err := svc.Delete(context.Background(), 99); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
