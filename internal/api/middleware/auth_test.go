package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/healthtrack/records-api/internal/core/domain"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubAuthService) Login(context.Context, string, string) (string, error) {
	return "", nil
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	return s.authenticateFn(ctx, token)
}

func acceptToken(valid string) *stubAuthService {
	return &stubAuthService{
		authenticateFn: func(_ context.Context, token string) (*domain.User, error) {
			if token != valid {
				return nil, domain.ErrTokenInvalid
			}
			return &domain.User{Username: "doctor1", Role: domain.RoleDoctor}, nil
		},
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Auth(acceptToken("abc123"))
	handler := mw(func(c echo.Context) error {
		called = true
		if c.Get(ContextUsername) != "doctor1" {
			t.Fatalf("username not set")
		}
		if c.Get(ContextRole) != domain.RoleDoctor {
			t.Fatalf("role not set")
		}
		if u, ok := c.Get(ContextUser).(*domain.User); !ok || u.Username != "doctor1" {
			t.Fatalf("user not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer   abc123")
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth(acceptToken("abc123"))(func(c echo.Context) error { return nil })
	if err := handler(c); err != nil {
		t.Fatalf("expected lowercase scheme to be accepted, got %v", err)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		header string
		want   error
	}{
		{"missing header", "", domain.ErrTokenMissing},
		{"wrong scheme", "Token abc123", domain.ErrTokenMissing},
		{"scheme only", "Bearer", domain.ErrTokenMissing},
		{"extra parts", "Bearer abc 123", domain.ErrTokenMissing},
		{"unknown token", "Bearer garbage", domain.ErrTokenInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			handler := Auth(acceptToken("abc123"))(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
