package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
	"github.com/Mukta-28/Movie-Review-Project/internal/core/ports"
)

// RatingService computes per-movie rating stats, optionally through a cache
// that is invalidated on writes and re-warmed by a refresh queue.
type RatingService struct {
	reviews ports.ReviewRepository
	cache   ports.RatingsCache
	queue   ports.RefreshQueue
	logger  zerolog.Logger

	// generations counts the writes seen per movie. A computation only
	// reaches the cache if no write happened while it ran.
	mu          sync.Mutex
	generations map[int64]uint64
}

// NewRatingService returns a RatingService. cache may be nil.
func NewRatingService(reviews ports.ReviewRepository, cache ports.RatingsCache, logger zerolog.Logger) *RatingService {
	return &RatingService{reviews: reviews, cache: cache, logger: logger, generations: make(map[int64]uint64)}
}

// UseQueue attaches the refresh queue. The queue usually calls back into
// Refresh, hence the setter.
func (s *RatingService) UseQueue(q ports.RefreshQueue) {
	s.queue = q
}

func (s *RatingService) Stats(ctx context.Context, movieID int64) (*domain.RatingStats, error) {
	if s.cache != nil {
		stats, err := s.cache.Get(ctx, movieID)
		if err != nil {
			s.logger.Warn().Err(err).Int64("movie_id", movieID).Msg("ratings cache read failed")
		} else if stats != nil {
			return stats, nil
		}
	}
	return s.compute(ctx, movieID)
}

func (s *RatingService) Changed(ctx context.Context, movieID int64) {
	s.Forget(ctx, movieID)
	if s.queue != nil && s.cache != nil {
		s.queue.Enqueue(movieID)
	}
}

func (s *RatingService) Forget(ctx context.Context, movieID int64) {
	if s.cache == nil {
		return
	}
	s.bump(movieID)
	if err := s.cache.Invalidate(ctx, movieID); err != nil {
		s.logger.Warn().Err(err).Int64("movie_id", movieID).Msg("ratings cache invalidation failed")
	}
}

// Refresh recomputes the stats of one movie and stores them in the cache.
func (s *RatingService) Refresh(ctx context.Context, movieID int64) error {
	_, err := s.compute(ctx, movieID)
	return err
}

func (s *RatingService) compute(ctx context.Context, movieID int64) (*domain.RatingStats, error) {
	gen := s.generation(movieID)
	counts, err := s.reviews.CountByRating(ctx, movieID)
	if err != nil {
		return nil, err
	}
	stats := domain.NewRatingStats(movieID, counts)

	if s.cache != nil {
		if s.generation(movieID) != gen {
			s.logger.Debug().Int64("movie_id", movieID).Msg("ratings changed during computation, not cached")
			return stats, nil
		}
		if err := s.cache.Set(ctx, stats); err != nil {
			s.logger.Warn().Err(err).Int64("movie_id", movieID).Msg("ratings cache write failed")
			return stats, nil
		}
		// A write that landed between the check and Set may already have
		// invalidated the entry; drop what was just stored.
		if s.generation(movieID) != gen {
			s.Forget(ctx, movieID)
		}
	}
	return stats, nil
}

func (s *RatingService) generation(movieID int64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[movieID]
}

func (s *RatingService) bump(movieID int64) {
	s.mu.Lock()
	s.generations[movieID]++
	s.mu.Unlock()
}
