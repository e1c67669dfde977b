package domain

import "time"

// Movie is a catalog entry. AverageRating is derived from reviews and is nil
// while the movie has none.
type Movie struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Genre         string    `json:"genre"`
	ReleaseDate   string    `json:"releaseDate,omitempty"`
	PosterURL     string    `json:"posterUrl"`
	CreatedAt     time.Time `json:"createdAt"`
	AverageRating *float64  `json:"averageRating"`
}

// Review is a user's rating of a movie. UserName is captured when the review
// is written so later profile changes leave history untouched.
type Review struct {
	ID        int64     `json:"id"`
	MovieID   int64     `json:"movieId"`
	UserID    int64     `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// RatingCount is the number of reviews that gave a movie one rating value.
type RatingCount struct {
	Rating float64 `json:"rating"`
	Count  int64   `json:"count"`
}

// RatingStats aggregates the reviews of one movie.
type RatingStats struct {
	MovieID int64         `json:"movieId"`
	Counts  []RatingCount `json:"counts"`
	Total   int64         `json:"total"`
	Average *float64      `json:"average"`
}

// NewRatingStats derives the total and the average from per-rating counts.
// Counts are kept in the order given.
func NewRatingStats(movieID int64, counts []RatingCount) *RatingStats {
	stats := &RatingStats{MovieID: movieID, Counts: counts}
	var sum float64
	for _, rc := range counts {
		stats.Total += rc.Count
		sum += rc.Rating * float64(rc.Count)
	}
	if stats.Total > 0 {
		avg := sum / float64(stats.Total)
		stats.Average = &avg
	}
	if stats.Counts == nil {
		stats.Counts = []RatingCount{}
	}
	return stats
}

// Feedback is a message left by a site visitor.
type Feedback struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
