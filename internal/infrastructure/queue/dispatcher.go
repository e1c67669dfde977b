package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes rating refreshes to a fixed set of workers using
// consistent hashing on the movie id, so refreshes of one movie never race.
type Dispatcher struct {
	workers   []chan int64
	refresher ports.RatingsRefresher
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, refresher ports.RatingsRefresher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan int64, numWorkers),
		refresher: refresher,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan int64, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a movie to the worker responsible for it. It never blocks: a
// full channel drops the refresh and the next read recomputes the stats.
func (d *Dispatcher) Enqueue(movieID int64) {
	idx := d.shardIndex(movieID)
	select {
	case d.workers[idx] <- movieID:
		queueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		refreshDroppedTotal.Inc()
		d.log.Warn().Int64("movie_id", movieID).Int("worker_id", idx).Msg("ratings refresh dropped, queue full")
	}
}

// shardIndex maps a movie id deterministically to a worker index.
func (d *Dispatcher) shardIndex(movieID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(movieID, 10)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan int64) {
	depth := queueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case movieID, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()

			start := time.Now()
			result := "ok"
			if err := d.refresher.Refresh(ctx, movieID); err != nil {
				result = "error"
				d.log.Error().Err(err).
					Int64("movie_id", movieID).
					Int("worker_id", id).
					Msg("ratings refresh failed")
			}
			refreshDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
		}
	}
}
