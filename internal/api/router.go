package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/Mukta-28/Movie-Review-Project/docs"
	"github.com/Mukta-28/Movie-Review-Project/internal/api/handler"
	"github.com/Mukta-28/Movie-Review-Project/internal/api/middleware"
	"github.com/Mukta-28/Movie-Review-Project/internal/core/ports"
	opshttp "github.com/Mukta-28/Movie-Review-Project/internal/infrastructure/http"
	"github.com/Mukta-28/Movie-Review-Project/internal/infrastructure/http/handlers"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Log      zerolog.Logger
	Resolver ports.IdentityResolver
	Auth     ports.AuthService
	Users    ports.UserService
	Movies   ports.MovieService
	Reviews  ports.ReviewService
	Feedback ports.FeedbackService

	// Checks are pinged by the readiness endpoint, keyed by dependency name.
	Checks map[string]handlers.Pinger
	// AllowedOrigins are the browser origins allowed by CORS.
	AllowedOrigins []string
	// Registerer receives the HTTP request collectors. Defaults to the
	// prometheus default registerer.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string { return ksuid.New().String() },
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "moviereview",
		Subsystem:  "http",
		Registerer: d.Registerer,
	}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.AllowedOrigins,
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
	}))

	// --- Operational routes (no auth required) ---
	opshttp.RegisterOperational(e, d.Checks, d.Log)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API routes: every request is authenticated, then checked against the policy ---
	api := e.Group("/api",
		middleware.Authenticate(d.Resolver, d.Log),
		middleware.Authorize(NewPolicy()),
	)

	authHandler := handler.NewAuthHandler(d.Auth)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/auth/me", authHandler.Me)

	movieHandler := handler.NewMovieHandler(d.Movies)
	api.GET("/movies", movieHandler.List)
	api.POST("/movies", movieHandler.Create)
	api.GET("/movies/:id", movieHandler.Get)
	api.PUT("/movies/:id", movieHandler.Update)
	api.DELETE("/movies/:id", movieHandler.Delete)

	reviewHandler := handler.NewReviewHandler(d.Reviews)
	api.GET("/reviews", reviewHandler.ListAll)
	api.POST("/reviews", reviewHandler.Create)
	api.DELETE("/reviews/:id", reviewHandler.Delete)
	api.GET("/reviews/movie/:movieId", reviewHandler.ListByMovie)
	api.GET("/reviews/movie/:movieId/ratings-count", reviewHandler.RatingCounts)
	api.GET("/reviews/user/:userId", reviewHandler.ListByUser)

	api.GET("/users", handler.NewUserHandler(d.Users).List)
	api.POST("/feedback", handler.NewFeedbackHandler(d.Feedback).Submit)

	return e
}
