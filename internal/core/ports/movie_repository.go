package ports

import (
	"context"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
)

// MovieRepository defines persistence for the movie catalog.
type MovieRepository interface {
	Create(ctx context.Context, m *domain.Movie) (*domain.Movie, error)
	// FindByID returns domain.ErrMovieNotFound when the movie does not exist.
	FindByID(ctx context.Context, id int64) (*domain.Movie, error)
	// FindByTitle matches case-insensitively.
	FindByTitle(ctx context.Context, title string) (*domain.Movie, error)
	List(ctx context.Context) ([]*domain.Movie, error)
	Update(ctx context.Context, m *domain.Movie) (*domain.Movie, error)
	// Delete returns domain.ErrMovieInUse when reviews still reference the movie.
	Delete(ctx context.Context, id int64) error
}
