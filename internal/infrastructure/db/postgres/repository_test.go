package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewStore(sqlx.NewDb(db, "postgres")), mock
}

var (
	userCols   = []string{"id", "name", "email", "password_hash", "role", "created_at"}
	movieCols  = []string{"id", "title", "description", "genre", "release_date", "poster_url", "created_at"}
	reviewCols = []string{"id", "movie_id", "user_id", "user_name", "rating", "comment", "created_at"}
	now        = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
)

func TestUserRepository_Create(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`^INSERT INTO users \(name, email, password_hash, role, created_at\)`).
		WithArgs("Alice", "alice@example.com", "hash", "USER", now).
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(1, "Alice", "alice@example.com", "hash", "USER", now))

	u, err := s.Users.Create(context.Background(), &domain.User{
		Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", Role: domain.RoleUser, CreatedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, domain.RoleUser, u.Role)
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`^INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	_, err := s.Users.Create(context.Background(), &domain.User{Email: "alice@example.com", Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUserRepository_FindByEmail(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(3, "Alice", "alice@example.com", "hash", "ADMIN", now))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows(userCols))

	u, err := s.Users.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)

	_, err = s.Users.FindByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_ListWrapsErrors(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`FROM users ORDER BY id`).WillReturnError(errors.New("db down"))

	_, err := s.Users.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list users: db down")
}

func TestMovieRepository_FindByTitle(t *testing.T) {
	s, mock := newMockStore(t)

	release := time.Date(1995, 12, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(title) = LOWER($1)`)).
		WithArgs("heat").
		WillReturnRows(sqlmock.NewRows(movieCols).AddRow(5, "Heat", "", "Crime", release, "", now))

	m, err := s.Movies.FindByTitle(context.Background(), "heat")
	require.NoError(t, err)
	assert.Equal(t, "Heat", m.Title)
	assert.Equal(t, "1995-12-15", m.ReleaseDate)
	assert.Nil(t, m.AverageRating)
}

func TestMovieRepository_CreateWithoutReleaseDate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`^INSERT INTO movies`).
		WithArgs("Heat", "", "Crime", nil, "", now).
		WillReturnRows(sqlmock.NewRows(movieCols).AddRow(5, "Heat", "", "Crime", nil, "", now))

	m, err := s.Movies.Create(context.Background(), &domain.Movie{Title: "Heat", Genre: "Crime", CreatedAt: now})
	require.NoError(t, err)
	assert.Empty(t, m.ReleaseDate)
}

func TestMovieRepository_UpdateMissing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`^UPDATE movies`).WillReturnRows(sqlmock.NewRows(movieCols))

	_, err := s.Movies.Update(context.Background(), &domain.Movie{ID: 9, Title: "Heat"})
	assert.ErrorIs(t, err, domain.ErrMovieNotFound)
}

func TestMovieRepository_Delete(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM movies WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnError(&pq.Error{Code: "23503", Constraint: reviewsMovieFKey})
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM movies WHERE id = $1`)).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM movies WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.ErrorIs(t, s.Movies.Delete(context.Background(), 1), domain.ErrMovieInUse)
	assert.ErrorIs(t, s.Movies.Delete(context.Background(), 2), domain.ErrMovieNotFound)
	assert.NoError(t, s.Movies.Delete(context.Background(), 3))
}

func TestReviewRepository_CreateMissingMovie(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`^INSERT INTO reviews`).
		WillReturnError(&pq.Error{Code: "23503", Constraint: reviewsMovieFKey})
	mock.ExpectQuery(`^INSERT INTO reviews`).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "reviews_user_id_fkey"})

	_, err := s.Reviews.Create(context.Background(), &domain.Review{MovieID: 1, UserID: 1, Rating: 3, Comment: "ok"})
	assert.ErrorIs(t, err, domain.ErrMovieNotFound)

	_, err = s.Reviews.Create(context.Background(), &domain.Review{MovieID: 1, UserID: 1, Rating: 3, Comment: "ok"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestReviewRepository_FindByMovieID(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM reviews WHERE movie_id = $1 ORDER BY id`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(reviewCols).
			AddRow(1, 4, 2, "Bob", 4.5, "great", now).
			AddRow(2, 4, 3, "Cy", 2.0, "meh", now))

	reviews, err := s.Reviews.FindByMovieID(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Bob", reviews[0].UserName)
	assert.Equal(t, 4.5, reviews[0].Rating)
}

func TestReviewRepository_CountByRating(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`GROUP BY rating ORDER BY rating DESC`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"rating", "count"}).AddRow(5.0, 2).AddRow(3.0, 1))

	counts, err := s.Reviews.CountByRating(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, []domain.RatingCount{{Rating: 5, Count: 2}, {Rating: 3, Count: 1}}, counts)
}

func TestReviewRepository_Delete(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM reviews WHERE movie_id = $1`)).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM reviews WHERE id = $1`)).
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := s.Reviews.DeleteByMovieID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	assert.ErrorIs(t, s.Reviews.Delete(context.Background(), 8), domain.ErrReviewNotFound)
}

func TestFeedbackRepository_Create(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(`VALUES ($1, $2, $3, $4) RETURNING id`)).
		WithArgs("Ann", "ann@example.com", "hello", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	f, err := s.Feedback.Create(context.Background(), &domain.Feedback{Name: "Ann", Email: "ann@example.com", Message: "hello", CreatedAt: now})
	require.NoError(t, err)
	assert.Equal(t, int64(11), f.ID)
	assert.Equal(t, "hello", f.Message)
}

func TestPingUsesPool(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(sql.ErrConnDone)
	s := NewStore(sqlx.NewDb(db, "postgres"))
	assert.ErrorIs(t, s.Ping(context.Background()), sql.ErrConnDone)
}
