package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/service"
	"github.com/Mukta-28/Movie-Review-Project/internal/infrastructure/db/memory"
	"github.com/Mukta-28/Movie-Review-Project/internal/infrastructure/http/handlers"
	"github.com/Mukta-28/Movie-Review-Project/internal/infrastructure/token"
)

const routerAdminKey = "router-admin-key"

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()
	log := zerolog.Nop()
	tokens, err := token.NewService("router-secret", time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	store := memory.NewStore()
	ratings := service.NewRatingService(store.Reviews(), nil, log)

	return NewRouter(Deps{
		Log:            log,
		Resolver:       service.NewIdentityResolver(tokens, store.Users()),
		Auth:           service.NewAuthService(store.Users(), tokens, routerAdminKey, log),
		Users:          service.NewUserService(store.Users()),
		Movies:         service.NewMovieService(store.Movies(), store.Reviews(), ratings, log),
		Reviews:        service.NewReviewService(store.Reviews(), store.Movies(), store.Users(), ratings, log),
		Feedback:       service.NewFeedbackService(store.Feedback(), log),
		Checks:         map[string]handlers.Pinger{"store": store},
		AllowedOrigins: []string{"http://localhost:5173"},
		Registerer:     prometheus.NewRegistry(),
	})
}

func do(t *testing.T, e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func registerToken(t *testing.T, e *echo.Echo, body string) string {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/api/auth/register", "", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp.Token
}

func decodeID(t *testing.T, rec *httptest.ResponseRecorder) int64 {
	t.Helper()
	var resp struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp.ID
}

func TestRouter_AdminRouteRequiresAdmin(t *testing.T) {
	e := newTestRouter(t)
	userToken := registerToken(t, e, `{"name":"Uma","email":"uma@example.com","password":"secret"}`)
	movie := `{"title":"Heat"}`

	if rec := do(t, e, http.MethodPost, "/api/movies", "", movie); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401, got %d", rec.Code)
	}
	if rec := do(t, e, http.MethodPost, "/api/movies", "garbage", movie); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", rec.Code)
	}
	if rec := do(t, e, http.MethodPost, "/api/movies", userToken, movie); rec.Code != http.StatusForbidden {
		t.Fatalf("user: expected 403, got %d", rec.Code)
	}
	if rec := do(t, e, http.MethodGet, "/api/users", userToken, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("user listing users: expected 403, got %d", rec.Code)
	}
}

func TestRouter_AdminRegistration(t *testing.T) {
	e := newTestRouter(t)

	rec := do(t, e, http.MethodPost, "/api/auth/register", "",
		`{"name":"Mallory","email":"mallory@example.com","password":"secret","role":"ADMIN","adminKey":"guess"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("wrong admin key: expected 403, got %d", rec.Code)
	}

	adminToken := registerToken(t, e, fmt.Sprintf(
		`{"name":"Ada","email":"ada@example.com","password":"secret","role":"ADMIN","adminKey":%q}`, routerAdminKey))
	rec = do(t, e, http.MethodGet, "/api/auth/me", adminToken, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"role":"ADMIN"`) {
		t.Fatalf("me: unexpected response %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, e, http.MethodPost, "/api/movies", adminToken, `{"title":"Heat"}`); rec.Code != http.StatusCreated {
		t.Fatalf("admin create movie: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_AdminRegistrationDoesNotRevealEmails(t *testing.T) {
	e := newTestRouter(t)
	registerToken(t, e, `{"name":"Uma","email":"uma@example.com","password":"secret"}`)

	rec := do(t, e, http.MethodPost, "/api/auth/register", "",
		`{"name":"Uma","email":"uma@example.com","password":"secret","role":"ADMIN","adminKey":"wrong"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("taken email with wrong admin key: expected 403, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodPost, "/api/auth/register", "",
		`{"name":"Uma","email":"uma@example.com","password":"secret"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("taken email as USER: expected 409, got %d", rec.Code)
	}
}

func TestRouter_CatalogFlow(t *testing.T) {
	e := newTestRouter(t)
	adminToken := registerToken(t, e, fmt.Sprintf(
		`{"name":"Ada","email":"ada@example.com","password":"secret","role":"ADMIN","adminKey":%q}`, routerAdminKey))
	userToken := registerToken(t, e, `{"name":"Uma","email":"uma@example.com","password":"secret"}`)

	rec := do(t, e, http.MethodPost, "/api/movies", adminToken, `{"title":"Ran","releaseDate":"1985-06-01"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create movie: %d %s", rec.Code, rec.Body.String())
	}
	movieID := decodeID(t, rec)

	for _, rating := range []int{3, 4, 5} {
		body := fmt.Sprintf(`{"movieId":%d,"rating":%d,"comment":"seen it"}`, movieID, rating)
		if rec := do(t, e, http.MethodPost, "/api/reviews", userToken, body); rec.Code != http.StatusCreated {
			t.Fatalf("create review: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec = do(t, e, http.MethodGet, fmt.Sprintf("/api/movies/%d", movieID), "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"averageRating":4`) {
		t.Fatalf("get movie: unexpected response %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodGet, fmt.Sprintf("/api/reviews/movie/%d/ratings-count", movieID), "", "")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), `[{"rating":5,"count":1}`) {
		t.Fatalf("ratings count: unexpected response %d %s", rec.Code, rec.Body.String())
	}

	if rec := do(t, e, http.MethodGet, "/api/reviews", userToken, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("user listing all reviews: expected 403, got %d", rec.Code)
	}
	if rec := do(t, e, http.MethodGet, "/api/reviews/user/1", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous reviews by user: expected 401, got %d", rec.Code)
	}

	if rec := do(t, e, http.MethodDelete, fmt.Sprintf("/api/movies/%d", movieID), adminToken, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete movie: %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, e, http.MethodGet, fmt.Sprintf("/api/reviews/movie/%d", movieID), "", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("reviews after delete: unexpected response %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, e, http.MethodGet, fmt.Sprintf("/api/movies/%d", movieID), "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("deleted movie: expected 404, got %d", rec.Code)
	}
}

func TestRouter_PublicRoutes(t *testing.T) {
	e := newTestRouter(t)

	if rec := do(t, e, http.MethodGet, "/api/movies", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("movies: expected 200, got %d", rec.Code)
	}
	rec := do(t, e, http.MethodPost, "/api/feedback", "", `{"name":"Ann","email":"ann@example.com","message":"Nice"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("feedback: expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, e, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	if rec := do(t, e, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", rec.Code)
	}
	if rec := do(t, e, http.MethodGet, "/api/nowhere", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown api route: expected 401, got %d", rec.Code)
	}
}

func TestRouter_Login(t *testing.T) {
	e := newTestRouter(t)
	registerToken(t, e, `{"name":"Uma","email":"uma@example.com","password":"secret"}`)

	rec := do(t, e, http.MethodPost, "/api/auth/login", "", `{"email":"UMA@example.com","password":"secret"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"token"`) {
		t.Fatalf("login: unexpected response %d %s", rec.Code, rec.Body.String())
	}
	rec = do(t, e, http.MethodPost, "/api/auth/login", "", `{"email":"uma@example.com","password":"wrong!"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: expected 401, got %d", rec.Code)
	}
}

func TestRouter_RequestID(t *testing.T) {
	e := newTestRouter(t)
	rec := do(t, e, http.MethodGet, "/health", "", "")
	if len(rec.Header().Get(echo.HeaderXRequestID)) != 27 {
		t.Fatalf("expected a ksuid request id, got %q", rec.Header().Get(echo.HeaderXRequestID))
	}
}
