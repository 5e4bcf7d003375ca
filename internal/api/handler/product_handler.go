package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercatto/catalog-api/internal/core/ports"
)

type ProductHandler struct {
	productService ports.ProductService
}

func NewProductHandler(productService ports.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

type productRequest struct {
	Name        string   `json:"name" form:"name" validate:"required,min=2,max=200"`
	Description string   `json:"description" form:"description" validate:"required,min=10,max=2000"`
	Price       float64  `json:"price" form:"price" validate:"gte=0"`
	Discount    float64  `json:"discount,omitempty" form:"discount" validate:"gte=0,lte=100"`
	Stock       int      `json:"stock,omitempty" form:"stock" validate:"gte=0"`
	SKU         string   `json:"sku,omitempty" form:"sku"`
	Weight      *float64 `json:"weight,omitempty" form:"weight"`
	Dimensions  string   `json:"dimensions,omitempty" form:"dimensions"`
	Featured    *bool    `json:"featured,omitempty" form:"featured"`
	CategoryID  uint     `json:"category_id" form:"category_id" validate:"required"`
}

func (r *productRequest) input() ports.ProductInput {
	return ports.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Discount:    r.Discount,
		Stock:       r.Stock,
		SKU:         r.SKU,
		Weight:      r.Weight,
		Dimensions:  r.Dimensions,
		Featured:    r.Featured,
		CategoryID:  r.CategoryID,
	}
}

// List returns all products, newest first.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /api/produtos [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get returns one product with its category.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /api/produtos/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	product, err := h.productService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create adds a product. Admin only. The SKU is generated when not supplied.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      productRequest  true  "Product fields"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Router       /api/produtos [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return DispatchErr(c, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), "/produtos")
	}
	if err := c.Validate(&req); err != nil {
		return DispatchErr(c, err, "/produtos")
	}

	product, err := h.productService.Create(c.Request().Context(), req.input())
	if err != nil {
		return DispatchErr(c, err, "/produtos")
	}

	return Dispatch(c, Outcome{
		Status:   http.StatusCreated,
		Body:     product,
		Redirect: "/produtos",
		Flash:    "product created",
	})
}

// Update modifies a product. Admin only.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Product id"
// @Param        body  body      productRequest  true  "Product fields"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/produtos/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return DispatchErr(c, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), "/produtos")
	}
	if err := c.Validate(&req); err != nil {
		return DispatchErr(c, err, "/produtos")
	}

	product, err := h.productService.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return DispatchErr(c, err, "/produtos")
	}

	return Dispatch(c, Outcome{
		Status:   http.StatusOK,
		Body:     product,
		Redirect: "/produtos",
		Flash:    "product updated",
	})
}

// Delete deactivates a product. Admin only; idempotent.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/produtos/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return DispatchErr(c, err, "/produtos")
	}
	return Dispatch(c, Outcome{
		Status:   http.StatusOK,
		Body:     map[string]string{"message": "product deleted"},
		Redirect: "/produtos",
		Flash:    "product deleted",
	})
}
