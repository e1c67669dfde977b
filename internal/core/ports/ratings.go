package ports

import (
	"context"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
)

// RatingsCache stores computed rating stats per movie. Get reports a miss with
// (nil, nil).
type RatingsCache interface {
	Get(ctx context.Context, movieID int64) (*domain.RatingStats, error)
	Set(ctx context.Context, stats *domain.RatingStats) error
	Invalidate(ctx context.Context, movieID int64) error
}

// RatingsRefresher recomputes and stores the stats of one movie.
type RatingsRefresher interface {
	Refresh(ctx context.Context, movieID int64) error
}

// RefreshQueue schedules asynchronous stats refreshes.
type RefreshQueue interface {
	Enqueue(movieID int64)
}
