package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"movie not found", domain.ErrMovieNotFound, http.StatusNotFound, "movie not found"},
		{"wrapped not found", fmt.Errorf("load: %w", domain.ErrReviewNotFound), http.StatusNotFound, "load: review not found"},
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusConflict, "email already in use"},
		{"movie in use", domain.ErrMovieInUse, http.StatusConflict, "cannot delete movie: there are dependent records"},
		{"unauthenticated", domain.ErrUnauthorized, http.StatusUnauthorized, "authentication required"},
		{"bad password", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"admin key", domain.ErrInvalidAdminKey, http.StatusForbidden, "invalid admin secret key"},
		{"invalid input", domain.NewError(domain.ErrInvalidInput, "title is required"), http.StatusBadRequest, "title is required"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unknown", errors.New("pq: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tt.err, c)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tt.msg {
				t.Fatalf("expected message %q, got %q", tt.msg, resp.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := c.NoContent(http.StatusNoContent); err != nil {
		t.Fatalf("NoContent: %v", err)
	}

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrMovieNotFound, c)

	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("committed response was rewritten: %d %q", rec.Code, rec.Body.String())
	}
}
