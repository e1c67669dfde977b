package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Mukta-28/Movie-Review-Project/internal/infrastructure/http/handlers"
)

// RegisterOperational mounts the routes used by the platform rather than by
// clients: liveness, readiness and Prometheus metrics. None of them require
// credentials.
func RegisterOperational(e *echo.Echo, deps map[string]handlers.Pinger, log zerolog.Logger) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps, log)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
}
