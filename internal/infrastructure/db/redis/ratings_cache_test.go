package redis

import (
	"encoding/json"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
)

func TestRatingsKey(t *testing.T) {
	assert.Equal(t, "ratings:42", ratingsKey(42))
}

func TestDecodeStats(t *testing.T) {
	in := domain.NewRatingStats(9, []domain.RatingCount{{Rating: 5, Count: 2}, {Rating: 3, Count: 2}})
	raw, err := json.Marshal(in)
	require.NoError(t, err)

	out, err := decodeStats(raw)
	require.NoError(t, err)
	assert.Equal(t, in.Counts, out.Counts)
	require.NotNil(t, out.Average)
	assert.InDelta(t, 4.0, *out.Average, 1e-9)

	empty, err := decodeStats([]byte(`{"movieId":1,"total":0,"average":null}`))
	require.NoError(t, err)
	assert.NotNil(t, empty.Counts)
	assert.Nil(t, empty.Average)

	_, err = decodeStats([]byte("{"))
	assert.Error(t, err)
}

func TestNewRatingsCache_DefaultTTL(t *testing.T) {
	c := NewRatingsCache(goredis.NewClient(&goredis.Options{Addr: "localhost:0"}), 0)
	assert.Equal(t, 10*time.Minute, c.ttl)
}
