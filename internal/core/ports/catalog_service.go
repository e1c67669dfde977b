package ports

import (
	"context"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
)

// MovieInput carries the editable fields of a movie.
type MovieInput struct {
	Title       string
	Description string
	Genre       string
	ReleaseDate string
	PosterURL   string
}

// MovieService defines catalog use cases. Returned movies carry their
// average rating.
type MovieService interface {
	List(ctx context.Context) ([]*domain.Movie, error)
	Get(ctx context.Context, id int64) (*domain.Movie, error)
	Create(ctx context.Context, in MovieInput) (*domain.Movie, error)
	Update(ctx context.Context, id int64, in MovieInput) (*domain.Movie, error)
	Delete(ctx context.Context, id int64) error
}

// CreateReviewInput carries a new review. The author comes from the caller's
// identity, never from the payload.
type CreateReviewInput struct {
	MovieID int64
	Rating  float64
	Comment string
}

// ReviewService defines review use cases.
type ReviewService interface {
	ListAll(ctx context.Context) ([]*domain.Review, error)
	ListByMovie(ctx context.Context, movieID int64) ([]*domain.Review, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Review, error)
	Create(ctx context.Context, author *domain.Identity, in CreateReviewInput) (*domain.Review, error)
	Delete(ctx context.Context, id int64) error
	RatingCounts(ctx context.Context, movieID int64) ([]domain.RatingCount, error)
}

// RatingService serves per-movie rating aggregates.
type RatingService interface {
	Stats(ctx context.Context, movieID int64) (*domain.RatingStats, error)
	// Changed is called after the reviews of a movie were written.
	Changed(ctx context.Context, movieID int64)
	// Forget drops cached stats of a deleted movie.
	Forget(ctx context.Context, movieID int64)
}

// FeedbackInput carries a visitor message.
type FeedbackInput struct {
	Name    string
	Email   string
	Message string
}

// FeedbackService stores visitor feedback.
type FeedbackService interface {
	Submit(ctx context.Context, in FeedbackInput) (*domain.Feedback, error)
}
