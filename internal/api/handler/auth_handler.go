package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mercatto/catalog-api/internal/api/metrics"
	"github.com/mercatto/catalog-api/internal/api/session"
	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Name            string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm,omitempty" form:"password_confirm"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
	Remember bool   `json:"remember,omitempty" form:"remember"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return DispatchErr(c, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), "/register")
	}
	if err := c.Validate(&req); err != nil {
		return DispatchErr(c, err, "/register")
	}
	// Confirmation field only exists on the browser form.
	if !WantsJSON(c) && req.Password != req.PasswordConfirm {
		return DispatchErr(c, echo.NewHTTPError(http.StatusBadRequest, "passwords do not match"), "/register")
	}

	user, token, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return DispatchErr(c, err, "/register")
	}

	metrics.RegistrationsTotal.Inc()
	return Dispatch(c, Outcome{
		Status:   http.StatusCreated,
		Body:     authResponse{Token: token, User: user},
		Redirect: "/login",
		Flash:    "account created, please sign in",
	})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return DispatchErr(c, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), "/login")
	}

	token, user, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return DispatchErr(c, err, "/login")
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	if !WantsJSON(c) && req.Remember {
		session.SetRemember(c, token)
	}

	return Dispatch(c, Outcome{
		Status:   http.StatusOK,
		Body:     authResponse{Token: token, User: user},
		Redirect: "/dashboard",
		Flash:    "welcome back, " + user.Name,
	})
}

// Logout clears the remember cookie. Tokens themselves stay valid until
// expiry; there is no server-side invalidation.
//
// @Summary      Logout
// @Tags         auth
// @Success      200  {object}  map[string]string
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session.ClearRemember(c)
	return Dispatch(c, Outcome{
		Status:   http.StatusOK,
		Body:     map[string]string{"message": "logged out"},
		Redirect: "/login",
		Flash:    "signed out",
	})
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountDisabled):
		return "disabled"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "invalid_credentials"
	}
}
