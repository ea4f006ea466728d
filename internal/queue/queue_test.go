package queue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stakepad/stakepad-round-indexer/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T, capacity int, timeout time.Duration) *QueueManager {
	t.Helper()
	qm := NewQueueManager(&config.QueueConfig{
		ProcessingTimeout: timeout,
		Capacity:          capacity,
	})
	qm.Start(t.Context())
	t.Cleanup(qm.Shutdown)
	return qm
}

func TestQueueManager_FIFOAndSingleConcurrency(t *testing.T) {
	qm := newTestQueue(t, 16, time.Second)

	var (
		mu       sync.Mutex
		order    []int
		inFlight atomic.Int32
		maxSeen  atomic.Int32
		wg       sync.WaitGroup
	)

	for i := range 10 {
		wg.Add(1)
		err := qm.Add(Job{
			Name: "job",
			Run: func(ctx context.Context) error {
				defer wg.Done()
				n := inFlight.Add(1)
				if n > maxSeen.Load() {
					maxSeen.Store(n)
				}
				time.Sleep(time.Millisecond)
				inFlight.Add(-1)

				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			},
		})
		require.NoError(t, err)
	}

	wg.Wait()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
	assert.Equal(t, int32(1), maxSeen.Load())
}

func TestQueueManager_FailingJobIsNotFatal(t *testing.T) {
	qm := newTestQueue(t, 4, time.Second)

	done := make(chan struct{})
	require.NoError(t, qm.Add(Job{Name: "fails", Run: func(ctx context.Context) error {
		return errors.New("rpc unavailable")
	}}))
	require.NoError(t, qm.Add(Job{Name: "panics", Run: func(ctx context.Context) error {
		panic("unexpected")
	}}))
	require.NoError(t, qm.Add(Job{Name: "succeeds", Run: func(ctx context.Context) error {
		close(done)
		return nil
	}}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job after failures did not run")
	}
}

func TestQueueManager_TimeoutAbandonsJob(t *testing.T) {
	qm := newTestQueue(t, 4, 20*time.Millisecond)

	release := make(chan struct{})
	defer close(release)

	cancelled := make(chan struct{})
	require.NoError(t, qm.Add(Job{Name: "stuck", Run: func(ctx context.Context) error {
		<-ctx.Done()
		close(cancelled)
		// ignores cancellation and keeps going
		<-release
		return nil
	}}))

	next := make(chan struct{})
	require.NoError(t, qm.Add(Job{Name: "next", Run: func(ctx context.Context) error {
		close(next)
		return nil
	}}))

	select {
	case <-next:
	case <-time.After(time.Second):
		t.Fatal("queue was blocked by a timed out job")
	}
	select {
	case <-cancelled:
	default:
		t.Fatal("timed out job context was not cancelled")
	}
}

func TestQueueManager_Full(t *testing.T) {
	qm := newTestQueue(t, 1, time.Second)

	started := make(chan struct{})
	release := make(chan struct{})
	require.NoError(t, qm.Add(Job{Name: "blocking", Run: func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}}))
	<-started

	noop := Job{Name: "noop", Run: func(ctx context.Context) error { return nil }}
	require.NoError(t, qm.Add(noop))
	assert.Equal(t, 1, qm.Len())
	assert.ErrorIs(t, qm.Add(noop), ErrQueueFull)

	close(release)
}

func TestQueueManager_AddWait(t *testing.T) {
	noop := Job{Name: "noop", Run: func(ctx context.Context) error { return nil }}

	fillQueue := func(t *testing.T, qm *QueueManager) chan struct{} {
		started := make(chan struct{})
		release := make(chan struct{})
		require.NoError(t, qm.Add(Job{Name: "blocking", Run: func(ctx context.Context) error {
			close(started)
			<-release
			return nil
		}}))
		<-started
		require.NoError(t, qm.Add(noop))
		return release
	}

	t.Run("waits for room", func(t *testing.T) {
		qm := newTestQueue(t, 1, time.Second)
		release := fillQueue(t, qm)

		ran := make(chan struct{})
		added := make(chan error, 1)
		go func() {
			added <- qm.AddWait(t.Context(), Job{Name: "waiting", Run: func(ctx context.Context) error {
				close(ran)
				return nil
			}})
		}()

		select {
		case err := <-added:
			t.Fatalf("job was added to a full queue: %v", err)
		case <-time.After(20 * time.Millisecond):
		}

		close(release)
		select {
		case err := <-added:
			require.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("job was not added after the queue drained")
		}
		select {
		case <-ran:
		case <-time.After(time.Second):
			t.Fatal("waiting job did not run")
		}
	})
	t.Run("gives up when the context is done", func(t *testing.T) {
		qm := newTestQueue(t, 1, time.Second)
		release := fillQueue(t, qm)
		defer close(release)

		ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
		defer cancel()

		err := qm.AddWait(ctx, noop)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 1, qm.Len())
	})
}

func TestQueueManager_AddAfterShutdown(t *testing.T) {
	qm := NewQueueManager(&config.QueueConfig{ProcessingTimeout: time.Second, Capacity: 1})
	qm.Start(t.Context())
	qm.Shutdown()
	qm.Shutdown()

	late := Job{Name: "late", Run: func(ctx context.Context) error { return nil }}
	assert.ErrorIs(t, qm.Add(late), ErrQueueClosed)
	assert.ErrorIs(t, qm.AddWait(t.Context(), late), ErrQueueClosed)
}
