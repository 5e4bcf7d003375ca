package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercatto/catalog-api/internal/core/ports"
)

type CategoryHandler struct {
	categoryService ports.CategoryService
}

func NewCategoryHandler(categoryService ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type categoryRequest struct {
	Name        string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" form:"description" validate:"max=500"`
}

// List returns all categories ordered by name.
//
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /api/categorias [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// Get returns one category with its active products.
//
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category id"
// @Success      200  {object}  domain.Category
// @Failure      404  {object}  map[string]string
// @Router       /api/categorias/{id} [get]
func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	category, err := h.categoryService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// Products returns the products of one category.
//
// @Summary      List a category's products
// @Tags         categories
// @Produce      json
// @Param        id   path     int  true  "Category id"
// @Success      200  {array}  domain.Product
// @Failure      404  {object}  map[string]string
// @Router       /api/categorias/{id}/produtos [get]
func (h *CategoryHandler) Products(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	products, err := h.categoryService.Products(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Create adds a category. Admin only.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body      categoryRequest  true  "Category fields"
// @Success      201   {object}  domain.Category
// @Failure      400   {object}  map[string]string
// @Router       /api/categorias [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return DispatchErr(c, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), "/categorias")
	}
	if err := c.Validate(&req); err != nil {
		return DispatchErr(c, err, "/categorias")
	}

	category, err := h.categoryService.Create(c.Request().Context(), ports.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return DispatchErr(c, err, "/categorias")
	}

	return Dispatch(c, Outcome{
		Status:   http.StatusCreated,
		Body:     category,
		Redirect: "/categorias",
		Flash:    "category created",
	})
}

// Update renames a category. Admin only.
//
// @Summary      Update a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Category id"
// @Param        body  body      categoryRequest  true  "Category fields"
// @Success      200   {object}  domain.Category
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/categorias/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return DispatchErr(c, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), "/categorias")
	}
	if err := c.Validate(&req); err != nil {
		return DispatchErr(c, err, "/categorias")
	}

	category, err := h.categoryService.Update(c.Request().Context(), id, ports.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return DispatchErr(c, err, "/categorias")
	}

	return Dispatch(c, Outcome{
		Status:   http.StatusOK,
		Body:     category,
		Redirect: "/categorias",
		Flash:    "category updated",
	})
}

// Delete deactivates a category. Admin only; blocked while active products
// reference it.
//
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/categorias/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.categoryService.Delete(c.Request().Context(), id); err != nil {
		return DispatchErr(c, err, "/categorias")
	}
	return Dispatch(c, Outcome{
		Status:   http.StatusOK,
		Body:     map[string]string{"message": "category deleted"},
		Redirect: "/categorias",
		Flash:    "category deleted",
	})
}
