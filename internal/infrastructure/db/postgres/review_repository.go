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

const reviewsMovieFKey = "reviews_movie_id_fkey"

type ReviewRepository struct {
	db *sqlx.DB
}

func NewReviewRepository(db *sqlx.DB) *ReviewRepository { return &ReviewRepository{db: db} }

type reviewRow struct {
	ID        int64     `db:"id"`
	MovieID   int64     `db:"movie_id"`
	UserID    int64     `db:"user_id"`
	UserName  string    `db:"user_name"`
	Rating    float64   `db:"rating"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}

func (r reviewRow) toDomain() *domain.Review {
	return &domain.Review{
		ID:        r.ID,
		MovieID:   r.MovieID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

const reviewColumns = `id, movie_id, user_id, user_name, rating, comment, created_at`

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) (*domain.Review, error) {
	const q = `INSERT INTO reviews (movie_id, user_id, user_name, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + reviewColumns

	var row reviewRow
	err := r.db.QueryRowxContext(ctx, q, rv.MovieID, rv.UserID, rv.UserName, rv.Rating, rv.Comment, rv.CreatedAt).StructScan(&row)
	if err != nil {
		if pqErr, ok := pqError(err); ok && pqErr.Code == foreignKeyViolation {
			if pqErr.Constraint == reviewsMovieFKey {
				return nil, domain.ErrMovieNotFound
			}
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id int64) (*domain.Review, error) {
	var row reviewRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ReviewRepository) List(ctx context.Context) ([]*domain.Review, error) {
	return r.selectReviews(ctx, `SELECT `+reviewColumns+` FROM reviews ORDER BY id`)
}

func (r *ReviewRepository) FindByMovieID(ctx context.Context, movieID int64) ([]*domain.Review, error) {
	return r.selectReviews(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE movie_id = $1 ORDER BY id`, movieID)
}

func (r *ReviewRepository) FindByUserID(ctx context.Context, userID int64) ([]*domain.Review, error) {
	return r.selectReviews(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *ReviewRepository) DeleteByMovieID(ctx context.Context, movieID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE movie_id = $1`, movieID)
	if err != nil {
		return 0, fmt.Errorf("delete movie reviews: %w", err)
	}
	return res.RowsAffected()
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if n == 0 {
		return domain.ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepository) CountByRating(ctx context.Context, movieID int64) ([]domain.RatingCount, error) {
	const q = `SELECT rating, COUNT(*) AS count FROM reviews
		WHERE movie_id = $1 GROUP BY rating ORDER BY rating DESC`

	var rows []struct {
		Rating float64 `db:"rating"`
		Count  int64   `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, q, movieID); err != nil {
		return nil, fmt.Errorf("count ratings: %w", err)
	}

	counts := make([]domain.RatingCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, domain.RatingCount{Rating: row.Rating, Count: row.Count})
	}
	return counts, nil
}

func (r *ReviewRepository) selectReviews(ctx context.Context, q string, args ...any) ([]*domain.Review, error) {
	var rows []reviewRow
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	reviews := make([]*domain.Review, 0, len(rows))
	for _, row := range rows {
		reviews = append(reviews, row.toDomain())
	}
	return reviews, nil
}

type FeedbackRepository struct {
	db *sqlx.DB
}

func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository { return &FeedbackRepository{db: db} }

func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	const q = `INSERT INTO feedback (name, email, message, created_at)
		VALUES (:name, :email, :message, :created_at) RETURNING id`

	rows, err := r.db.NamedQueryContext(ctx, q, map[string]any{
		"name":       f.Name,
		"email":      f.Email,
		"message":    f.Message,
		"created_at": f.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}
	defer rows.Close()

	stored := *f
	if !rows.Next() {
		return nil, fmt.Errorf("insert feedback: %w", sql.ErrNoRows)
	}
	if err := rows.Scan(&stored.ID); err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}
	return &stored, nil
}
