package chainclient

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/stakepad/stakepad-round-indexer/internal/types"
)

const headerChanCapacity = 64

// headSequencer turns the node's finalized head notifications, which may skip
// heights, into a contiguous range of heights to deliver.
type headSequencer struct {
	last uint64
}

// next returns the inclusive range of heights to deliver for a notification
// at height. ok is false when height was already delivered.
func (s *headSequencer) next(height uint64) (from, to uint64, ok bool) {
	if s.last == 0 {
		return height, height, true
	}
	if height <= s.last {
		return 0, 0, false
	}
	return s.last + 1, height, true
}

func (s *headSequencer) delivered(height uint64) {
	s.last = height
}

func (c *ChainClient) SubscribeFinalizedHeads(ctx context.Context) (<-chan types.Header, error) {
	sub, err := c.api.RPC.Chain.SubscribeFinalizedHeads()
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to finalized heads: %w", err)
	}

	out := make(chan types.Header, headerChanCapacity)
	go func() {
		defer close(out)
		defer sub.Unsubscribe()

		var seq headSequencer
		for {
			select {
			case <-ctx.Done():
				return
			case err := <-sub.Err():
				log.Ctx(ctx).Error().Err(err).Msg("finalized heads subscription failed")
				return
			case head, ok := <-sub.Chan():
				if !ok {
					return
				}

				from, to, ok := seq.next(uint64(head.Number))
				if !ok {
					continue
				}
				if to > from {
					log.Ctx(ctx).Debug().
						Uint64("from", from).
						Uint64("to", to).
						Msg("filling finalized heads gap")
				}

				for height := from; height <= to; height++ {
					header, err := c.GetHeaderAt(ctx, height)
					if err != nil {
						// the remaining heights are retried on the next notification
						log.Ctx(ctx).Error().Err(err).Uint64("height", height).Msg("failed to resolve finalized header")
						break
					}

					select {
					case out <- header:
						seq.delivered(height)
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return out, nil
}
