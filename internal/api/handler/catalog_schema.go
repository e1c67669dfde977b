package handler

import (
	"github.com/Mukta-28/Movie-Review-Project/internal/core/ports"
)

type movieRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
	Genre       string `json:"genre" validate:"max=100"`
	ReleaseDate string `json:"releaseDate" validate:"omitempty,datetime=2006-01-02"`
	PosterURL   string `json:"posterUrl" validate:"omitempty,url"`
}

func (r movieRequest) toInput() ports.MovieInput {
	return ports.MovieInput{
		Title:       r.Title,
		Description: r.Description,
		Genre:       r.Genre,
		ReleaseDate: r.ReleaseDate,
		PosterURL:   r.PosterURL,
	}
}

// Rating is a pointer so that a missing rating is told apart from 0.
type createReviewRequest struct {
	MovieID int64    `json:"movieId" validate:"required,gt=0"`
	Rating  *float64 `json:"rating" validate:"required,gte=0,lte=5"`
	Comment string   `json:"comment" validate:"required,max=2000"`
}

type feedbackRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,max=2000"`
}
