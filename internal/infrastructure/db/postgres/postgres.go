// Package postgres implements the repositories on PostgreSQL with sqlx and
// lib/pq. The schema is managed by goose migrations embedded in the binary.
package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

const (
	defaultMaxConns = 10
	pingTimeout     = 5 * time.Second

	uniqueViolation     = pq.ErrorCode("23505")
	foreignKeyViolation = pq.ErrorCode("23503")
)

//go:embed migrations/*.sql
var migrations embed.FS

// Config captures the settings for opening the connection pool.
type Config struct {
	URL      string
	MaxConns int
}

// Connect opens the pool and verifies connectivity with a ping.
func Connect(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return db, nil
}

// Migrate applies every pending embedded migration.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db.DB, "migrations"); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Store groups the repositories sharing one pool.
type Store struct {
	Users    *UserRepository
	Movies   *MovieRepository
	Reviews  *ReviewRepository
	Feedback *FeedbackRepository

	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		Users:    NewUserRepository(db),
		Movies:   NewMovieRepository(db),
		Reviews:  NewReviewRepository(db),
		Feedback: NewFeedbackRepository(db),
		db:       db,
	}
}

// Ping lets the store act as a readiness check.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// pqError returns the server error behind err, if any.
func pqError(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr, true
	}
	return nil, false
}

func isViolation(err error, code pq.ErrorCode) bool {
	pqErr, ok := pqError(err)
	return ok && pqErr.Code == code
}
