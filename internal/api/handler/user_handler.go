package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
	authService ports.AuthService
}

func NewUserHandler(userService ports.UserService, authService ports.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

type updateUserRequest struct {
	Name   *string `json:"name,omitempty" form:"name"`
	Email  *string `json:"email,omitempty" form:"email"`
	Role   *string `json:"role,omitempty" form:"role"`
	Active *bool   `json:"active,omitempty" form:"active"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" form:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" form:"new_password" validate:"required,min=6"`
}

// Profile returns the authenticated user's own record.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.User
// @Router       /api/usuarios/perfil [get]
func (h *UserHandler) Profile(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if principal == nil {
		return err
	}
	user, err := h.userService.Get(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile updates the authenticated user's own name and email.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateUserRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Router       /api/usuarios/perfil [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if principal == nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return DispatchErr(c, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), "/perfil")
	}

	// Role and Active are admin-only fields; self-service updates never
	// carry them, whatever the payload says.
	user, err := h.userService.Update(c.Request().Context(), principal.ID, ports.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return DispatchErr(c, err, "/perfil")
	}

	return Dispatch(c, Outcome{
		Status:   http.StatusOK,
		Body:     user,
		Redirect: "/perfil",
		Flash:    "profile updated",
	})
}

// ChangePassword verifies the current password before accepting a new one.
//
// @Summary      Change own password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/usuarios/alterar-senha [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if principal == nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return DispatchErr(c, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), "/perfil")
	}
	if err := c.Validate(&req); err != nil {
		return DispatchErr(c, err, "/perfil")
	}

	if err := h.authService.ChangePassword(c.Request().Context(), principal.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return DispatchErr(c, err, "/perfil")
	}

	return Dispatch(c, Outcome{
		Status:   http.StatusOK,
		Body:     map[string]string{"message": "password changed"},
		Redirect: "/perfil",
		Flash:    "password changed",
	})
}

// List returns all users. Admin only (route-level gate).
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /api/usuarios [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns one user. Users may see their own record; admins anyone's.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/usuarios/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if principal == nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if principal.ID != id && !principal.Can(domain.RoleAdmin) {
		return domain.ErrForbidden
	}

	user, err := h.userService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update modifies a user. Self or admin; only admins may touch role/active.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/usuarios/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if principal == nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if principal.ID != id && !principal.Can(domain.RoleAdmin) {
		return domain.ErrForbidden
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return DispatchErr(c, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), "/usuarios")
	}

	input := ports.UpdateUserInput{Name: req.Name, Email: req.Email}
	if principal.Can(domain.RoleAdmin) {
		input.Role = req.Role
		input.Active = req.Active
	}

	user, err := h.userService.Update(c.Request().Context(), id, input)
	if err != nil {
		return DispatchErr(c, err, "/usuarios")
	}

	return Dispatch(c, Outcome{
		Status:   http.StatusOK,
		Body:     user,
		Redirect: "/usuarios",
		Flash:    "user updated",
	})
}

// Delete removes a user. Admin only; deleting your own account is refused.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/usuarios/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	principal, err := requirePrincipal(c)
	if principal == nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Request().Context(), principal.ID, id); err != nil {
		return DispatchErr(c, err, "/usuarios")
	}

	return Dispatch(c, Outcome{
		Status:   http.StatusOK,
		Body:     map[string]string{"message": "user deleted"},
		Redirect: "/usuarios",
		Flash:    "user deleted",
	})
}

// Activity returns a user's recent audit trail. Admin only (route-level gate).
//
// @Summary      List a user's recent activity
// @Tags         users
// @Produce      json
// @Param        id     path      int  true   "User id"
// @Param        limit  query     int  false  "Max entries (default 50)"
// @Success      200    {array}   domain.AuditEntry
// @Failure      404    {object}  map[string]string
// @Router       /api/usuarios/{id}/atividades [get]
func (h *UserHandler) Activity(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	entries, err := h.userService.Activity(c.Request().Context(), id, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
