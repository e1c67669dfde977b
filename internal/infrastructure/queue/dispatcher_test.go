package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRefresher struct {
	mu   sync.Mutex
	seen []int64
	err  error
}

func (r *recordingRefresher) Refresh(_ context.Context, movieID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, movieID)
	return r.err
}

func (r *recordingRefresher) snapshot() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64(nil), r.seen...)
}

func TestDispatcher_ProcessesEnqueuedMovies(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ref := &recordingRefresher{}
	d := NewDispatcher(3, ref, zerolog.Nop())
	d.Start(ctx)

	for id := int64(1); id <= 10; id++ {
		d.Enqueue(id)
	}

	require.Eventually(t, func() bool { return len(ref.snapshot()) == 10 }, time.Second, 5*time.Millisecond)
	assert.ElementsMatch(t, []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ref.snapshot())
}

func TestDispatcher_PreservesPerMovieOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ref := &recordingRefresher{}
	d := NewDispatcher(4, ref, zerolog.Nop())
	assert.Equal(t, d.shardIndex(42), d.shardIndex(42))

	d.Start(ctx)
	for i := 0; i < 5; i++ {
		d.Enqueue(42)
	}
	require.Eventually(t, func() bool { return len(ref.snapshot()) == 5 }, time.Second, 5*time.Millisecond)
}

func TestDispatcher_ErrorsDoNotStopWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ref := &recordingRefresher{err: errors.New("store down")}
	d := NewDispatcher(1, ref, zerolog.Nop())
	d.Start(ctx)

	d.Enqueue(1)
	d.Enqueue(2)
	require.Eventually(t, func() bool { return len(ref.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
}

func TestDispatcher_EnqueueDropsWhenFull(t *testing.T) {
	ref := &recordingRefresher{}
	d := NewDispatcher(1, ref, zerolog.Nop())
	droppedBefore := testutil.ToFloat64(refreshDroppedTotal)
	depthBefore := testutil.ToFloat64(queueDepth.WithLabelValues("0"))

	// Not started: nothing drains the channel.
	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Enqueue(7)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
	assert.Len(t, d.workers[0], channelBuffer)
	assert.Equal(t, float64(10), testutil.ToFloat64(refreshDroppedTotal)-droppedBefore)
	assert.Equal(t, float64(channelBuffer), testutil.ToFloat64(queueDepth.WithLabelValues("0"))-depthBefore)
}

func TestNewDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recordingRefresher{}, zerolog.Nop())
	assert.Len(t, d.workers, defaultWorkers)
}
