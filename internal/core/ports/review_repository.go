package ports

import (
	"context"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
)

// ReviewRepository defines persistence for reviews. Listings are ordered by ID.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) (*domain.Review, error)
	// FindByID returns domain.ErrReviewNotFound when the review does not exist.
	FindByID(ctx context.Context, id int64) (*domain.Review, error)
	List(ctx context.Context) ([]*domain.Review, error)
	FindByMovieID(ctx context.Context, movieID int64) ([]*domain.Review, error)
	FindByUserID(ctx context.Context, userID int64) ([]*domain.Review, error)
	// DeleteByMovieID returns the number of reviews removed.
	DeleteByMovieID(ctx context.Context, movieID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
	// CountByRating groups the reviews of a movie by rating, highest first.
	CountByRating(ctx context.Context, movieID int64) ([]domain.RatingCount, error)
}

// FeedbackRepository stores visitor feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error)
}
