package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
)

const dateLayout = "2006-01-02"

type MovieRepository struct {
	db *sqlx.DB
}

func NewMovieRepository(db *sqlx.DB) *MovieRepository { return &MovieRepository{db: db} }

type movieRow struct {
	ID          int64        `db:"id"`
	Title       string       `db:"title"`
	Description string       `db:"description"`
	Genre       string       `db:"genre"`
	ReleaseDate sql.NullTime `db:"release_date"`
	PosterURL   string       `db:"poster_url"`
	CreatedAt   time.Time    `db:"created_at"`
}

func (r movieRow) toDomain() *domain.Movie {
	m := &domain.Movie{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Genre:       r.Genre,
		PosterURL:   r.PosterURL,
		CreatedAt:   r.CreatedAt.UTC(),
	}
	if r.ReleaseDate.Valid {
		m.ReleaseDate = r.ReleaseDate.Time.Format(dateLayout)
	}
	return m
}

// releaseDate maps an empty date to NULL.
func releaseDate(s string) any {
	if s == "" {
		return nil
	}
	return s
}

const movieColumns = `id, title, description, genre, release_date, poster_url, created_at`

func (r *MovieRepository) Create(ctx context.Context, m *domain.Movie) (*domain.Movie, error) {
	const q = `INSERT INTO movies (title, description, genre, release_date, poster_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + movieColumns

	var row movieRow
	err := r.db.QueryRowxContext(ctx, q, m.Title, m.Description, m.Genre, releaseDate(m.ReleaseDate), m.PosterURL, m.CreatedAt).StructScan(&row)
	if err != nil {
		if isViolation(err, uniqueViolation) {
			return nil, domain.ErrMovieExists
		}
		return nil, fmt.Errorf("insert movie: %w", err)
	}
	return row.toDomain(), nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id int64) (*domain.Movie, error) {
	return r.get(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id)
}

func (r *MovieRepository) FindByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	return r.get(ctx, `SELECT `+movieColumns+` FROM movies WHERE LOWER(title) = LOWER($1)`, title)
}

func (r *MovieRepository) List(ctx context.Context) ([]*domain.Movie, error) {
	var rows []movieRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+movieColumns+` FROM movies ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	movies := make([]*domain.Movie, 0, len(rows))
	for _, row := range rows {
		movies = append(movies, row.toDomain())
	}
	return movies, nil
}

func (r *MovieRepository) Update(ctx context.Context, m *domain.Movie) (*domain.Movie, error) {
	const q = `UPDATE movies
		SET title = $2, description = $3, genre = $4, release_date = $5, poster_url = $6
		WHERE id = $1 RETURNING ` + movieColumns

	var row movieRow
	err := r.db.QueryRowxContext(ctx, q, m.ID, m.Title, m.Description, m.Genre, releaseDate(m.ReleaseDate), m.PosterURL).StructScan(&row)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, domain.ErrMovieNotFound
	case isViolation(err, uniqueViolation):
		return nil, domain.ErrMovieExists
	case err != nil:
		return nil, fmt.Errorf("update movie: %w", err)
	}
	return row.toDomain(), nil
}

// Delete reports domain.ErrMovieInUse when reviews still reference the movie.
func (r *MovieRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		if isViolation(err, foreignKeyViolation) {
			return domain.ErrMovieInUse
		}
		return fmt.Errorf("delete movie: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if n == 0 {
		return domain.ErrMovieNotFound
	}
	return nil
}

func (r *MovieRepository) get(ctx context.Context, q string, arg any) (*domain.Movie, error) {
	var row movieRow
	if err := r.db.GetContext(ctx, &row, q, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}
	return row.toDomain(), nil
}
