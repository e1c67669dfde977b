// Package memory is a map-backed store used for local runs (STORE=memory) and
// router-level tests. It enforces the same uniqueness and reference rules as
// the database adapters.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
)

// Store holds every entity behind one lock so cross-entity rules stay atomic.
type Store struct {
	mu       sync.RWMutex
	seq      int64
	users    map[int64]domain.User
	movies   map[int64]domain.Movie
	reviews  map[int64]domain.Review
	feedback map[int64]domain.Feedback
}

func NewStore() *Store {
	return &Store{
		users:    make(map[int64]domain.User),
		movies:   make(map[int64]domain.Movie),
		reviews:  make(map[int64]domain.Review),
		feedback: make(map[int64]domain.Feedback),
	}
}

func (s *Store) Users() *UserRepository { return &UserRepository{s} }
func (s *Store) Movies() *MovieRepository { return &MovieRepository{s} }
func (s *Store) Reviews() *ReviewRepository { return &ReviewRepository{s} }
func (s *Store) Feedback() *FeedbackRepository { return &FeedbackRepository{s} }

// Ping always succeeds; it lets the store act as a readiness check.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func sortedByID[T any](m map[int64]T, keep func(T) bool) []*T {
	ids := make([]int64, 0, len(m))
	for id, v := range m {
		if keep == nil || keep(v) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		v := m[id]
		out = append(out, &v)
	}
	return out
}

// UserRepository implements ports.UserRepository.
type UserRepository struct{ s *Store }

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	stored := *user
	stored.ID = r.s.nextID()
	r.s.users[stored.ID] = stored
	return &stored, nil
}

func (r *UserRepository) List(context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.users, nil), nil
}

// MovieRepository implements ports.MovieRepository.
type MovieRepository struct{ s *Store }

func (r *MovieRepository) titleTaken(title string, selfID int64) bool {
	for id, m := range r.s.movies {
		if id != selfID && strings.EqualFold(m.Title, title) {
			return true
		}
	}
	return false
}

func (r *MovieRepository) Create(_ context.Context, m *domain.Movie) (*domain.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.titleTaken(m.Title, 0) {
		return nil, domain.ErrMovieExists
	}
	stored := *m
	stored.ID = r.s.nextID()
	stored.AverageRating = nil
	r.s.movies[stored.ID] = stored
	return &stored, nil
}

func (r *MovieRepository) FindByID(_ context.Context, id int64) (*domain.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.movies[id]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}
	return &m, nil
}

func (r *MovieRepository) FindByTitle(_ context.Context, title string) (*domain.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.movies {
		if strings.EqualFold(m.Title, title) {
			return &m, nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

func (r *MovieRepository) List(context.Context) ([]*domain.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.movies, nil), nil
}

func (r *MovieRepository) Update(_ context.Context, m *domain.Movie) (*domain.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[m.ID]; !ok {
		return nil, domain.ErrMovieNotFound
	}
	if r.titleTaken(m.Title, m.ID) {
		return nil, domain.ErrMovieExists
	}
	stored := *m
	stored.AverageRating = nil
	r.s.movies[m.ID] = stored
	return &stored, nil
}

func (r *MovieRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[id]; !ok {
		return domain.ErrMovieNotFound
	}
	for _, rv := range r.s.reviews {
		if rv.MovieID == id {
			return domain.ErrMovieInUse
		}
	}
	delete(r.s.movies, id)
	return nil
}

// ReviewRepository implements ports.ReviewRepository.
type ReviewRepository struct{ s *Store }

func (r *ReviewRepository) Create(_ context.Context, rv *domain.Review) (*domain.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.movies[rv.MovieID]; !ok {
		return nil, domain.ErrMovieNotFound
	}
	if _, ok := r.s.users[rv.UserID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	stored := *rv
	stored.ID = r.s.nextID()
	r.s.reviews[stored.ID] = stored
	return &stored, nil
}

func (r *ReviewRepository) FindByID(_ context.Context, id int64) (*domain.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rv, ok := r.s.reviews[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	return &rv, nil
}

func (r *ReviewRepository) List(context.Context) ([]*domain.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.reviews, nil), nil
}

func (r *ReviewRepository) FindByMovieID(_ context.Context, movieID int64) ([]*domain.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.reviews, func(rv domain.Review) bool { return rv.MovieID == movieID }), nil
}

func (r *ReviewRepository) FindByUserID(_ context.Context, userID int64) ([]*domain.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.reviews, func(rv domain.Review) bool { return rv.UserID == userID }), nil
}

func (r *ReviewRepository) DeleteByMovieID(_ context.Context, movieID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, rv := range r.s.reviews {
		if rv.MovieID == movieID {
			delete(r.s.reviews, id)
			n++
		}
	}
	return n, nil
}

func (r *ReviewRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reviews[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(r.s.reviews, id)
	return nil
}

func (r *ReviewRepository) CountByRating(_ context.Context, movieID int64) ([]domain.RatingCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byRating := make(map[float64]int64)
	for _, rv := range r.s.reviews {
		if rv.MovieID == movieID {
			byRating[rv.Rating]++
		}
	}

	out := make([]domain.RatingCount, 0, len(byRating))
	for rating, n := range byRating {
		out = append(out, domain.RatingCount{Rating: rating, Count: n})
	}
	slices.SortFunc(out, func(a, b domain.RatingCount) int { return cmp.Compare(b.Rating, a.Rating) })
	return out, nil
}

// FeedbackRepository implements ports.FeedbackRepository.
type FeedbackRepository struct{ s *Store }

func (r *FeedbackRepository) Create(_ context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *f
	stored.ID = r.s.nextID()
	r.s.feedback[stored.ID] = stored
	return &stored, nil
}
