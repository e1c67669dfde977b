package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/authz"
	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
)

func newPolicy() *authz.Policy {
	return authz.NewPolicy(authz.AnyAuthenticated(),
		authz.Rule{Method: http.MethodGet, Path: "/movies", Requirement: authz.None()},
		authz.Rule{Method: http.MethodPost, Path: "/movies", Requirement: authz.RoleIn(domain.RoleAdmin)},
	)
}

func runAuthorize(t *testing.T, method, path string, id *domain.Identity) (bool, error) {
	t.Helper()
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(method, path, nil), httptest.NewRecorder())
	c.SetPath(path)
	if id != nil {
		c.Set(identityKey, id)
	}

	called := false
	err := Authorize(newPolicy())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return called, err
}

func TestAuthorize_Allows(t *testing.T) {
	admin := &domain.Identity{UserID: 1, Role: domain.RoleAdmin}

	if called, err := runAuthorize(t, http.MethodGet, "/movies", nil); err != nil || !called {
		t.Fatalf("public route should pass anonymous requests: called=%v err=%v", called, err)
	}
	if called, err := runAuthorize(t, http.MethodPost, "/movies", admin); err != nil || !called {
		t.Fatalf("admin should pass: called=%v err=%v", called, err)
	}
	if called, err := runAuthorize(t, http.MethodGet, "/elsewhere", admin); err != nil || !called {
		t.Fatalf("default rule should pass authenticated requests: called=%v err=%v", called, err)
	}
}

func TestAuthorize_Denies(t *testing.T) {
	user := &domain.Identity{UserID: 2, Role: domain.RoleUser}

	called, err := runAuthorize(t, http.MethodPost, "/movies", nil)
	if called || !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got called=%v err=%v", called, err)
	}

	called, err = runAuthorize(t, http.MethodPost, "/movies", user)
	if called || !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got called=%v err=%v", called, err)
	}

	called, err = runAuthorize(t, http.MethodDelete, "/elsewhere", nil)
	if called || !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("default rule should reject anonymous requests, got called=%v err=%v", called, err)
	}
}
