package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
	"github.com/Mukta-28/Movie-Review-Project/internal/core/ports"
)

type MovieService struct {
	movies  ports.MovieRepository
	reviews ports.ReviewRepository
	ratings ports.RatingService
	logger  zerolog.Logger
}

func NewMovieService(movies ports.MovieRepository, reviews ports.ReviewRepository, ratings ports.RatingService, logger zerolog.Logger) *MovieService {
	return &MovieService{movies: movies, reviews: reviews, ratings: ratings, logger: logger}
}

func (s *MovieService) List(ctx context.Context) ([]*domain.Movie, error) {
	movies, err := s.movies.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range movies {
		if err := s.withAverage(ctx, m); err != nil {
			return nil, err
		}
	}
	return movies, nil
}

func (s *MovieService) Get(ctx context.Context, id int64) (*domain.Movie, error) {
	m, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.withAverage(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MovieService) Create(ctx context.Context, in ports.MovieInput) (*domain.Movie, error) {
	in = trimMovieInput(in)
	if in.Title == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "title is required")
	}
	if err := s.ensureTitleFree(ctx, in.Title, 0); err != nil {
		return nil, err
	}

	created, err := s.movies.Create(ctx, &domain.Movie{
		Title:       in.Title,
		Description: in.Description,
		Genre:       in.Genre,
		ReleaseDate: in.ReleaseDate,
		PosterURL:   in.PosterURL,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("movie_id", created.ID).Str("title", created.Title).Msg("movie created")
	return created, nil
}

func (s *MovieService) Update(ctx context.Context, id int64, in ports.MovieInput) (*domain.Movie, error) {
	in = trimMovieInput(in)
	if in.Title == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "title is required")
	}

	existing, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(existing.Title, in.Title) {
		if err := s.ensureTitleFree(ctx, in.Title, id); err != nil {
			return nil, err
		}
	}

	existing.Title = in.Title
	existing.Description = in.Description
	existing.Genre = in.Genre
	existing.ReleaseDate = in.ReleaseDate
	existing.PosterURL = in.PosterURL

	updated, err := s.movies.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	if err := s.withAverage(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the reviews of a movie before the movie itself.
func (s *MovieService) Delete(ctx context.Context, id int64) error {
	if _, err := s.movies.FindByID(ctx, id); err != nil {
		return err
	}

	removed, err := s.reviews.DeleteByMovieID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.movies.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int64("movie_id", id).Msg("failed to delete movie")
		return err
	}
	s.ratings.Forget(ctx, id)

	s.logger.Info().Int64("movie_id", id).Int64("reviews_removed", removed).Msg("movie deleted")
	return nil
}

func (s *MovieService) ensureTitleFree(ctx context.Context, title string, selfID int64) error {
	other, err := s.movies.FindByTitle(ctx, title)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	case other.ID != selfID:
		return domain.ErrMovieExists
	}
	return nil
}

func (s *MovieService) withAverage(ctx context.Context, m *domain.Movie) error {
	stats, err := s.ratings.Stats(ctx, m.ID)
	if err != nil {
		return err
	}
	m.AverageRating = stats.Average
	return nil
}

func trimMovieInput(in ports.MovieInput) ports.MovieInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Genre = strings.TrimSpace(in.Genre)
	in.ReleaseDate = strings.TrimSpace(in.ReleaseDate)
	in.PosterURL = strings.TrimSpace(in.PosterURL)
	return in
}
