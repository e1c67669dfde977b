package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/ports"
)

type FeedbackHandler struct {
	service ports.FeedbackService
}

func NewFeedbackHandler(service ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Submit handles POST /api/feedback.
//
// @Summary      Leave feedback
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Param        body  body      feedbackRequest  true  "Feedback"
// @Success      201   {object}  domain.Feedback
// @Failure      400   {object}  map[string]string
// @Router       /feedback [post]
func (h *FeedbackHandler) Submit(c echo.Context) error {
	var req feedbackRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	fb, err := h.service.Submit(c.Request().Context(), ports.FeedbackInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, fb)
}
