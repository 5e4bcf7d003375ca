package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

type stubProductRepo struct {
	products map[uint]*domain.Product
	nextID   uint
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uint]*domain.Product), nextID: 1}
}

func (r *stubProductRepo) add(p *domain.Product) {
	p.ID = r.nextID
	r.nextID++
	r.products[p.ID] = p
}

func (r *stubProductRepo) List(context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductRepo) ListByCategory(_ context.Context, categoryID uint) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.products {
		if p.CategoryID == categoryID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) Create(_ context.Context, product *domain.Product) error {
	r.add(cloneProduct(product))
	product.ID = r.nextID - 1
	return nil
}

func (r *stubProductRepo) Update(_ context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.products[product.ID] = cloneProduct(product)
	return nil
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	return &clone
}

func productFixture() ports.ProductInput {
	return ports.ProductInput{
		Name:        "Go in Action",
		Description: "a thorough introduction",
		Price:       50,
		Stock:       3,
		CategoryID:  1,
	}
}

func newProductService() (*ProductService, *stubProductRepo, *stubCategoryRepo) {
	products := newStubProductRepo()
	categories := newStubCategoryRepo(products)
	categories.categories[1] = &domain.Category{ID: 1, Name: "Books", Active: true}
	categories.nextID = 2
	svc := NewProductService(products, categories, nil, zerolog.Nop())
	return svc, products, categories
}

func TestProductService_Create_GeneratesSKU(t *testing.T) {
	svc, _, _ := newProductService()

	product, err := svc.Create(context.Background(), productFixture())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.HasPrefix(product.SKU, "SKU-") || len(product.SKU) != len("SKU-")+8 {
		t.Fatalf("unexpected sku format: %q", product.SKU)
	}
	if !product.Active {
		t.Fatalf("expected new product to be active")
	}
}

func TestProductService_Create_KeepsSuppliedSKU(t *testing.T) {
	svc, _, _ := newProductService()

	input := productFixture()
	input.SKU = "SKU-CUSTOM01"
	product, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.SKU != "SKU-CUSTOM01" {
		t.Fatalf("expected supplied sku to stick, got %q", product.SKU)
	}
}

func TestProductService_Create_Validation(t *testing.T) {
	svc, _, categories := newProductService()

	cases := []func(*ports.ProductInput){
		func(i *ports.ProductInput) { i.Name = "x" },
		func(i *ports.ProductInput) { i.Description = "short" },
		func(i *ports.ProductInput) { i.Price = -1 },
		func(i *ports.ProductInput) { i.Discount = 150 },
		func(i *ports.ProductInput) { i.Stock = -5 },
	}
	for n, mutate := range cases {
		input := productFixture()
		mutate(&input)
		if _, err := svc.Create(context.Background(), input); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", n, err)
		}
	}

	input := productFixture()
	input.CategoryID = 99
	if _, err := svc.Create(context.Background(), input); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}

	categories.categories[1].Active = false
	if _, err := svc.Create(context.Background(), productFixture()); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for inactive category, got %v", err)
	}
}

func TestProductService_Delete_SoftAndIdempotent(t *testing.T) {
	svc, products, _ := newProductService()

	product, _ := svc.Create(context.Background(), productFixture())
	if err := svc.Delete(context.Background(), product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if products.products[product.ID].Active {
		t.Fatalf("expected soft delete, product still active")
	}
	if _, ok := products.products[product.ID]; !ok {
		t.Fatalf("expected row to remain")
	}
	if err := svc.Delete(context.Background(), product.ID); err != nil {
		t.Fatalf("repeat delete should be idempotent, got %v", err)
	}
}

func TestProduct_DiscountedPrice(t *testing.T) {
	p := &domain.Product{Price: 200, Discount: 25}
	if got := p.DiscountedPrice(); got != 150 {
		t.Fatalf("expected 150, got %v", got)
	}
	p.Discount = 0
	if got := p.DiscountedPrice(); got != 200 {
		t.Fatalf("expected list price, got %v", got)
	}
}
