package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mercatto/catalog-api/internal/api/session"
	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ports.RegisterInput) (*domain.User, string, error)
	loginFn    func(ports.LoginInput) (string, *domain.User, error)
}

func (s *stubAuthService) Register(_ context.Context, input ports.RegisterInput) (*domain.User, string, error) {
	return s.registerFn(input)
}

func (s *stubAuthService) Login(_ context.Context, input ports.LoginInput) (string, *domain.User, error) {
	return s.loginFn(input)
}

func (s *stubAuthService) ChangePassword(_ context.Context, _ uint, _, _ string) error {
	return nil
}

func jsonContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func formContext(method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_JSON(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(input ports.RegisterInput) (*domain.User, string, error) {
			return &domain.User{ID: 1, Name: input.Name, Email: input.Email, Role: domain.RoleUser}, "tok-abc", nil
		},
	})

	c, rec := jsonContext(http.MethodPost, "/api/auth/register",
		`{"name":"Maria Silva","email":"maria@example.com","password":"secret1"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"token":"tok-abc"`) {
		t.Fatalf("expected token in body, got %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password material leaked into response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_JSONValidation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(ports.RegisterInput) (*domain.User, string, error) {
			t.Fatal("service must not be called on invalid payload")
			return nil, "", nil
		},
	})

	c, _ := jsonContext(http.MethodPost, "/api/auth/register",
		`{"name":"M","email":"not-an-email","password":"x"}`)
	err := h.Register(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthHandler_Register_WebPasswordMismatch(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(ports.RegisterInput) (*domain.User, string, error) {
			t.Fatal("service must not be called when confirmation differs")
			return nil, "", nil
		},
	})

	form := url.Values{}
	form.Set("name", "Maria Silva")
	form.Set("email", "maria@example.com")
	form.Set("password", "secret1")
	form.Set("password_confirm", "secret2")
	c, rec := formContext(http.MethodPost, "/register", form)
	if err := h.Register(c); err != nil {
		t.Fatalf("web mode should redirect, not error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/register" {
		t.Fatalf("expected redirect back to /register, got %q", loc)
	}
}

func TestAuthHandler_Register_WebSuccessRedirectsToLogin(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(input ports.RegisterInput) (*domain.User, string, error) {
			return &domain.User{ID: 1, Name: input.Name, Email: input.Email}, "tok", nil
		},
	})

	form := url.Values{}
	form.Set("name", "Maria Silva")
	form.Set("email", "maria@example.com")
	form.Set("password", "secret1")
	form.Set("password_confirm", "secret1")
	c, rec := formContext(http.MethodPost, "/register", form)
	if err := h.Register(c); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestAuthHandler_Login_JSON(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(input ports.LoginInput) (string, *domain.User, error) {
			return "tok-login", &domain.User{ID: 1, Name: "Maria", Email: input.Email}, nil
		},
	})

	c, rec := jsonContext(http.MethodPost, "/api/auth/login",
		`{"email":"maria@example.com","password":"secret1","remember":true}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"token":"tok-login"`) {
		t.Fatalf("expected token in body, got %s", rec.Body.String())
	}
	// The remember cookie is a browser convenience; API clients never get it.
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.RememberCookie {
			t.Fatal("remember cookie set for a JSON client")
		}
	}
}

func TestAuthHandler_Login_JSONInvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(ports.LoginInput) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	})

	c, _ := jsonContext(http.MethodPost, "/api/auth/login",
		`{"email":"maria@example.com","password":"wrong"}`)
	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_WebRemember(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(ports.LoginInput) (string, *domain.User, error) {
			return "tok-remember", &domain.User{ID: 1, Name: "Maria"}, nil
		},
	})

	form := url.Values{}
	form.Set("email", "maria@example.com")
	form.Set("password", "secret1")
	form.Set("remember", "true")
	c, rec := formContext(http.MethodPost, "/login", form)
	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, got %q", loc)
	}

	var remember *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.RememberCookie {
			remember = cookie
		}
	}
	if remember == nil {
		t.Fatal("expected remember cookie to be set")
	}
	if remember.Value != "tok-remember" {
		t.Fatalf("unexpected cookie value %q", remember.Value)
	}
	if remember.MaxAge <= 0 {
		t.Fatalf("expected long-lived cookie, got MaxAge=%d", remember.MaxAge)
	}
}

func TestAuthHandler_Logout_ClearsRemember(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := jsonContext(http.MethodPost, "/api/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var cleared bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.RememberCookie && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected remember cookie to be expired")
	}
}
