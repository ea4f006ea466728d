package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stakepad/stakepad-round-indexer/internal/config"
	"github.com/stakepad/stakepad-round-indexer/internal/observability/metrics"
)

var (
	ErrQueueFull   = errors.New("round processing queue is full")
	ErrQueueClosed = errors.New("round processing queue is closed")
)

type Job struct {
	// Name identifies the job in logs.
	Name string
	Run  func(ctx context.Context) error
}

// QueueManager runs jobs one at a time in FIFO order. A job that exceeds the
// processing timeout has its context cancelled and is abandoned: the worker
// moves on without waiting for it to return.
type QueueManager struct {
	jobs    chan Job
	timeout time.Duration

	quit     chan struct{}
	quitOnce sync.Once
	wg       sync.WaitGroup
}

func NewQueueManager(cfg *config.QueueConfig) *QueueManager {
	return &QueueManager{
		jobs:    make(chan Job, cfg.Capacity),
		timeout: cfg.ProcessingTimeout,
		quit:    make(chan struct{}),
	}
}

// Start launches the single worker. It returns immediately.
func (qm *QueueManager) Start(ctx context.Context) {
	qm.wg.Add(1)
	go func() {
		defer qm.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-qm.quit:
				return
			case job := <-qm.jobs:
				metrics.RecordQueueDepth(len(qm.jobs))
				qm.run(ctx, job)
			}
		}
	}()
}

// Add enqueues job without blocking.
func (qm *QueueManager) Add(job Job) error {
	select {
	case <-qm.quit:
		return ErrQueueClosed
	default:
	}

	select {
	case qm.jobs <- job:
		metrics.RecordQueueDepth(len(qm.jobs))
		return nil
	default:
		metrics.RecordQueueAddError()
		return ErrQueueFull
	}
}

// AddWait enqueues job, waiting for room until ctx is done or the queue is
// shut down.
func (qm *QueueManager) AddWait(ctx context.Context, job Job) error {
	select {
	case <-qm.quit:
		return ErrQueueClosed
	default:
	}

	select {
	case qm.jobs <- job:
		metrics.RecordQueueDepth(len(qm.jobs))
		return nil
	case <-qm.quit:
		return ErrQueueClosed
	case <-ctx.Done():
		metrics.RecordQueueAddError()
		return ctx.Err()
	}
}

func (qm *QueueManager) Len() int {
	return len(qm.jobs)
}

func (qm *QueueManager) run(ctx context.Context, job Job) {
	jobCtx, cancel := context.WithTimeout(ctx, qm.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("job panicked: %v", r)
			}
		}()
		done <- job.Run(jobCtx)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("job", job.Name).Msg("round processing job failed")
		}
	case <-jobCtx.Done():
		if errors.Is(jobCtx.Err(), context.DeadlineExceeded) {
			metrics.RecordQueueJobTimeout()
			log.Ctx(ctx).Error().
				Str("job", job.Name).
				Dur("timeout", qm.timeout).
				Msg("round processing job timed out, abandoning it")
		}
	}
}

// Shutdown stops the worker after the job in progress, if any. Queued jobs are
// dropped.
func (qm *QueueManager) Shutdown() {
	log.Info().Msg("Shutting down queue manager")
	qm.quitOnce.Do(func() {
		close(qm.quit)
	})
	qm.wg.Wait()
}
