package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
	"github.com/Mukta-28/Movie-Review-Project/internal/core/ports"
)

const (
	minRating = 0
	maxRating = 5
)

type ReviewService struct {
	reviews ports.ReviewRepository
	movies  ports.MovieRepository
	users   ports.UserRepository
	ratings ports.RatingService
	logger  zerolog.Logger
}

func NewReviewService(
	reviews ports.ReviewRepository,
	movies ports.MovieRepository,
	users ports.UserRepository,
	ratings ports.RatingService,
	logger zerolog.Logger,
) *ReviewService {
	return &ReviewService{reviews: reviews, movies: movies, users: users, ratings: ratings, logger: logger}
}

func (s *ReviewService) ListAll(ctx context.Context) ([]*domain.Review, error) {
	return s.reviews.List(ctx)
}

func (s *ReviewService) ListByMovie(ctx context.Context, movieID int64) ([]*domain.Review, error) {
	return s.reviews.FindByMovieID(ctx, movieID)
}

func (s *ReviewService) ListByUser(ctx context.Context, userID int64) ([]*domain.Review, error) {
	return s.reviews.FindByUserID(ctx, userID)
}

// Create stores a review written by author. The author's current name is
// copied onto the review.
func (s *ReviewService) Create(ctx context.Context, author *domain.Identity, in ports.CreateReviewInput) (*domain.Review, error) {
	if author == nil {
		return nil, domain.ErrUnauthorized
	}
	comment := strings.TrimSpace(in.Comment)
	if comment == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "comment is required")
	}
	if in.Rating < minRating || in.Rating > maxRating {
		return nil, domain.NewError(domain.ErrInvalidInput, "rating must be between 0 and 5")
	}

	user, err := s.users.FindByID(ctx, author.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.movies.FindByID(ctx, in.MovieID); err != nil {
		return nil, err
	}

	review, err := s.reviews.Create(ctx, &domain.Review{
		MovieID:   in.MovieID,
		UserID:    user.ID,
		UserName:  user.Name,
		Rating:    in.Rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	s.ratings.Changed(ctx, review.MovieID)

	s.logger.Info().Int64("review_id", review.ID).Int64("movie_id", review.MovieID).Int64("user_id", review.UserID).Msg("review created")
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}
	s.ratings.Changed(ctx, review.MovieID)
	return nil
}

// RatingCounts returns the per-rating histogram of a movie, highest rating first.
func (s *ReviewService) RatingCounts(ctx context.Context, movieID int64) ([]domain.RatingCount, error) {
	if _, err := s.movies.FindByID(ctx, movieID); err != nil {
		return nil, err
	}
	stats, err := s.ratings.Stats(ctx, movieID)
	if err != nil {
		return nil, err
	}
	return stats.Counts, nil
}

type FeedbackService struct {
	repo   ports.FeedbackRepository
	logger zerolog.Logger
}

func NewFeedbackService(repo ports.FeedbackRepository, logger zerolog.Logger) *FeedbackService {
	return &FeedbackService{repo: repo, logger: logger}
}

func (s *FeedbackService) Submit(ctx context.Context, in ports.FeedbackInput) (*domain.Feedback, error) {
	f := &domain.Feedback{
		Name:      strings.TrimSpace(in.Name),
		Email:     domain.NormalizeEmail(in.Email),
		Message:   strings.TrimSpace(in.Message),
		CreatedAt: time.Now().UTC(),
	}
	if f.Name == "" || f.Email == "" || f.Message == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "name, email and message are required")
	}

	saved, err := s.repo.Create(ctx, f)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to store feedback")
		return nil, err
	}
	return saved, nil
}
