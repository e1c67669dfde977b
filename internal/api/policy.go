package api

import (
	"net/http"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/authz"
	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
)

// Route patterns as registered with echo. The policy is keyed on them.
const (
	routeRegister     = "/api/auth/register"
	routeLogin        = "/api/auth/login"
	routeMe           = "/api/auth/me"
	routeMovies       = "/api/movies"
	routeMovie        = "/api/movies/:id"
	routeReviews      = "/api/reviews"
	routeReview       = "/api/reviews/:id"
	routeMovieReviews = "/api/reviews/movie/:movieId"
	routeRatingCounts = "/api/reviews/movie/:movieId/ratings-count"
	routeUserReviews  = "/api/reviews/user/:userId"
	routeUsers        = "/api/users"
	routeFeedback     = "/api/feedback"
)

// NewPolicy returns the access rules of the public API. Routes without a rule
// require an authenticated caller.
func NewPolicy() *authz.Policy {
	public := authz.None()
	members := authz.RoleIn(domain.RoleUser, domain.RoleAdmin)
	admins := authz.RoleIn(domain.RoleAdmin)

	return authz.NewPolicy(authz.AnyAuthenticated(),
		authz.Rule{Method: http.MethodPost, Path: routeRegister, Requirement: public},
		authz.Rule{Method: http.MethodPost, Path: routeLogin, Requirement: public},
		authz.Rule{Method: http.MethodGet, Path: routeMe, Requirement: authz.AnyAuthenticated()},

		authz.Rule{Method: http.MethodGet, Path: routeMovies, Requirement: public},
		authz.Rule{Method: http.MethodGet, Path: routeMovie, Requirement: public},
		authz.Rule{Method: http.MethodPost, Path: routeMovies, Requirement: admins},
		authz.Rule{Method: http.MethodPut, Path: routeMovie, Requirement: admins},
		authz.Rule{Method: http.MethodDelete, Path: routeMovie, Requirement: admins},

		authz.Rule{Method: http.MethodGet, Path: routeMovieReviews, Requirement: public},
		authz.Rule{Method: http.MethodGet, Path: routeRatingCounts, Requirement: public},
		authz.Rule{Method: http.MethodGet, Path: routeUserReviews, Requirement: members},
		authz.Rule{Method: http.MethodPost, Path: routeReviews, Requirement: members},
		authz.Rule{Method: http.MethodGet, Path: routeReviews, Requirement: admins},
		authz.Rule{Method: http.MethodDelete, Path: routeReview, Requirement: admins},

		authz.Rule{Method: http.MethodGet, Path: routeUsers, Requirement: admins},
		authz.Rule{Method: http.MethodPost, Path: routeFeedback, Requirement: public},
	)
}
