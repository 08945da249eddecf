package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cvboost/scoring-system/internal/core/domain"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, email, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func jsonContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			return &domain.User{ID: "user_1", Email: email, Role: domain.RoleMember, Plan: domain.PlanFree}, nil
		},
	})

	c, rec := jsonContext(t, http.MethodPost, "/auth/register", `{"email":"alice@example.com","password":"s3cretpass"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.User == nil || resp.User.Email != "alice@example.com" {
		t.Errorf("unexpected user in response: %+v", resp.User)
	}
	if resp.Token != "" {
		t.Error("register must not issue a token")
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	})

	c, rec := jsonContext(t, http.MethodPost, "/auth/register", `{"email":"alice@example.com","password":"s3cretpass"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ValidationFailures(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(ctx context.Context, email, password string) (*domain.User, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	})

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"s3cretpass"}`},
		{"bad email", `{"email":"not-an-email","password":"s3cretpass"}`},
		{"short password", `{"email":"alice@example.com","password":"short"}`},
		{"malformed json", `{"email":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := jsonContext(t, http.MethodPost, "/auth/register", tc.body)
			if err := h.Register(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "signed-token", &domain.User{ID: "user_1", Email: email, Role: domain.RoleMember}, nil
		},
	})

	c, rec := jsonContext(t, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"s3cretpass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Token != "signed-token" {
		t.Errorf("expected token in response, got %q", resp.Token)
	}
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	// Unknown users and wrong passwords must be indistinguishable.
	for _, svcErr := range []error{domain.ErrInvalidCredentials, domain.ErrUserNotFound} {
		h := NewAuthHandler(&stubAuthService{
			loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
				return "", nil, svcErr
			},
		})

		c, rec := jsonContext(t, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"s3cretpass"}`)
		if err := h.Login(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %v, got %d", svcErr, rec.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if resp["error"] != domain.ErrInvalidCredentials.Error() {
			t.Errorf("expected a generic credentials error, got %q", resp["error"])
		}
	}
}
