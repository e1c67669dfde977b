package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mukta-28/Movie-Review-Project/internal/api/metrics"
	"github.com/Mukta-28/Movie-Review-Project/internal/api/middleware"
	"github.com/Mukta-28/Movie-Review-Project/internal/core/ports"
)

// ReviewHandler serves reviews and per-movie rating counts.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// ListAll handles GET /api/reviews.
//
// @Summary      List all reviews
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Review
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /reviews [get]
func (h *ReviewHandler) ListAll(c echo.Context) error {
	reviews, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// ListByMovie handles GET /api/reviews/movie/:movieId.
//
// @Summary      List reviews of a movie
// @Tags         reviews
// @Produce      json
// @Param        movieId  path      int  true  "Movie ID"
// @Success      200      {array}   domain.Review
// @Failure      400      {object}  map[string]string
// @Router       /reviews/movie/{movieId} [get]
func (h *ReviewHandler) ListByMovie(c echo.Context) error {
	movieID, err := pathID(c, "movieId")
	if err != nil {
		return err
	}
	reviews, err := h.service.ListByMovie(c.Request().Context(), movieID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// ListByUser handles GET /api/reviews/user/:userId.
//
// @Summary      List reviews written by a user
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      int  true  "User ID"
// @Success      200     {array}   domain.Review
// @Failure      401     {object}  map[string]string
// @Router       /reviews/user/{userId} [get]
func (h *ReviewHandler) ListByUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	reviews, err := h.service.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}

// RatingCounts handles GET /api/reviews/movie/:movieId/ratings-count.
//
// @Summary      Review counts per rating
// @Tags         reviews
// @Produce      json
// @Param        movieId  path      int  true  "Movie ID"
// @Success      200      {array}   domain.RatingCount
// @Failure      404      {object}  map[string]string
// @Router       /reviews/movie/{movieId}/ratings-count [get]
func (h *ReviewHandler) RatingCounts(c echo.Context) error {
	movieID, err := pathID(c, "movieId")
	if err != nil {
		return err
	}
	counts, err := h.service.RatingCounts(c.Request().Context(), movieID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, counts)
}

// Create handles POST /api/reviews. The author is the caller.
//
// @Summary      Write a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createReviewRequest  true  "Review"
// @Success      201   {object}  domain.Review
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	var req createReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.service.Create(c.Request().Context(), middleware.Identity(c), ports.CreateReviewInput{
		MovieID: req.MovieID,
		Rating:  *req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}

	metrics.ReviewsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, review)
}

// Delete handles DELETE /api/reviews/:id.
//
// @Summary      Delete a review
// @Tags         reviews
// @Security     BearerAuth
// @Param        id   path  int  true  "Review ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
