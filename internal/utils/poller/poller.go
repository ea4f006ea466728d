package poller

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stakepad/stakepad-round-indexer/internal/observability/metrics"
)

type PollFunc func(ctx context.Context) error

// Poller runs a PollFunc on start and then on every tick. Poll errors are
// logged and never stop the loop.
type Poller struct {
	name     string
	interval time.Duration
	poll     PollFunc
	quit     chan struct{}
}

func NewPoller(name string, interval time.Duration, poll PollFunc) *Poller {
	return &Poller{
		name:     name,
		interval: interval,
		poll:     poll,
		quit:     make(chan struct{}),
	}
}

// Start blocks until ctx is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	logger := log.Ctx(ctx).With().Str("poller", p.name).Logger()
	ctx = logger.WithContext(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	logger.Info().Dur("interval", p.interval).Msg("Starting poller")

	p.run(ctx)
	for {
		select {
		case <-ticker.C:
			p.run(ctx)
		case <-ctx.Done():
			logger.Info().Msg("Poller stopped due to context cancellation")
			return
		case <-p.quit:
			logger.Info().Msg("Poller stopped")
			return
		}
	}
}

func (p *Poller) Stop() {
	close(p.quit)
}

func (p *Poller) run(ctx context.Context) {
	startTime := time.Now()
	err := p.poll(ctx)
	metrics.RecordPollerDuration(time.Since(startTime), p.name, err != nil)

	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Error polling")
	}
}
