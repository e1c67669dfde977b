package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/ports"
)

// MovieHandler serves the movie catalog.
type MovieHandler struct {
	service ports.MovieService
}

func NewMovieHandler(service ports.MovieService) *MovieHandler {
	return &MovieHandler{service: service}
}

// List handles GET /api/movies.
//
// @Summary      List movies
// @Tags         movies
// @Produce      json
// @Success      200  {array}   domain.Movie
// @Router       /movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	movies, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movies)
}

// Get handles GET /api/movies/:id.
//
// @Summary      Get a movie
// @Tags         movies
// @Produce      json
// @Param        id   path      int  true  "Movie ID"
// @Success      200  {object}  domain.Movie
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /movies/{id} [get]
func (h *MovieHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	movie, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movie)
}

// Create handles POST /api/movies.
//
// @Summary      Add a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      movieRequest  true  "Movie"
// @Success      201   {object}  domain.Movie
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	movie, err := h.service.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, movie)
}

// Update handles PUT /api/movies/:id.
//
// @Summary      Update a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Movie ID"
// @Param        body  body      movieRequest  true  "Movie"
// @Success      200   {object}  domain.Movie
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /movies/{id} [put]
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req movieRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	movie, err := h.service.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movie)
}

// Delete handles DELETE /api/movies/:id. Reviews of the movie go with it.
//
// @Summary      Delete a movie
// @Tags         movies
// @Security     BearerAuth
// @Param        id   path  int  true  "Movie ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /movies/{id} [delete]
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
