package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/stakepad/stakepad-round-indexer/internal/observability/metrics"
	"github.com/stakepad/stakepad-round-indexer/internal/queue"
)

// SubscribeToFinalizedHeads feeds every finalized header to the detector and
// queues the resulting triggers. Errors for a single header are logged and
// never stop the loop.
func (s *Service) SubscribeToFinalizedHeads(ctx context.Context) error {
	headers, err := s.chain.SubscribeFinalizedHeads(ctx)
	if err != nil {
		return err
	}

	log.Ctx(ctx).Info().Msg("Subscribed to finalized heads")

	for {
		select {
		case <-ctx.Done():
			return nil
		case header, ok := <-headers:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("finalized heads subscription closed")
			}

			metrics.RecordFinalizedHeadHeight(header.Height)

			trigger, err := s.detector.OnHeader(ctx, header)
			if err != nil {
				log.Ctx(ctx).Error().Err(err).Uint64("height", header.Height).Msg("failed to handle header")
				continue
			}
			if trigger != nil {
				s.enqueueRound(ctx, *trigger)
			}
		}
	}
}

// enqueueRound hands trigger to the queue. Frozen triggers arrive with every
// header, at most one of them is pending at a time and one that finds the
// queue full is dropped. Other triggers wait for room until ctx is done.
func (s *Service) enqueueRound(ctx context.Context, trigger RoundTrigger) {
	frozen := trigger.Kind == TriggerFrozen
	if frozen && !s.frozenPending.CompareAndSwap(false, true) {
		log.Ctx(ctx).Trace().Uint32("round", trigger.Round).Msg("frozen round already pending")
		return
	}

	job := queue.Job{
		Name: fmt.Sprintf("%s-round-%d@%d", trigger.Kind, trigger.Round, trigger.Header.Height),
		Run: func(jobCtx context.Context) error {
			if frozen {
				defer s.frozenPending.Store(false)
			}
			return s.ProcessRound(jobCtx, trigger)
		},
	}

	var err error
	if frozen {
		err = s.queueManager.Add(job)
	} else {
		err = s.queueManager.AddWait(ctx, job)
	}
	if err != nil {
		if frozen {
			s.frozenPending.Store(false)
		}
		log.Ctx(ctx).Error().Err(err).Str("job", job.Name).Msg("failed to queue round processing")
		return
	}

	log.Ctx(ctx).Debug().Str("job", job.Name).Msg("round processing queued")
}
