package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/stakepad/stakepad-round-indexer/internal/clients/chainclient"
	"github.com/stakepad/stakepad-round-indexer/internal/config"
	"github.com/stakepad/stakepad-round-indexer/internal/types"
)

type TriggerKind string

const (
	// TriggerBoundary fires at the first block of a round observed live.
	TriggerBoundary TriggerKind = "boundary"
	// TriggerFrozen re-processes the configured last known round.
	TriggerFrozen TriggerKind = "frozen"
	// TriggerBackfill processes the running round after a restart, read at
	// its already finalized start block.
	TriggerBackfill TriggerKind = "backfill"
	// TriggerManual is issued from the command line.
	TriggerManual TriggerKind = "manual"
)

func (k TriggerKind) String() string {
	return string(k)
}

// RoundTrigger asks for round to be processed with a snapshot read at Header.
type RoundTrigger struct {
	Kind   TriggerKind
	Round  uint32
	Header types.Header
}

// RoundBoundaryState is where the current round starts. Both fields always
// change together.
type RoundBoundaryState struct {
	RoundStartHeight uint64
	CurrentRound     uint32
}

// NextBoundaryState applies the new round events of the block at header. A
// round announced at height N starts at N+1. Malformed events are ignored; if
// a block carries several valid ones the last wins.
func NextBoundaryState(
	state RoundBoundaryState, header types.Header, events []types.ChainEvent,
) (RoundBoundaryState, bool) {
	started := false
	for _, event := range events {
		if event.Type() != types.EventNewMiningRound {
			continue
		}
		round, err := event.RoundNumber()
		if err != nil {
			continue
		}

		state = RoundBoundaryState{
			RoundStartHeight: header.Height + 1,
			CurrentRound:     round,
		}
		started = true
	}

	return state, started
}

// RoundDetector turns the finalized header stream into round triggers. It is
// not safe for concurrent use, headers are fed one by one.
type RoundDetector struct {
	chain chainclient.ChainInterface
	cfg   *config.RoundConfig

	state        RoundBoundaryState
	known        bool
	frozenHeader *types.Header
}

func NewRoundDetector(chain chainclient.ChainInterface, cfg *config.RoundConfig) *RoundDetector {
	return &RoundDetector{
		chain: chain,
		cfg:   cfg,
	}
}

func (d *RoundDetector) State() RoundBoundaryState {
	return d.state
}

// Known reports whether the boundary state was recovered or observed. A
// zero start height is a valid state on a fresh chain.
func (d *RoundDetector) Known() bool {
	return d.known
}

func (d *RoundDetector) setState(state RoundBoundaryState) {
	d.state = state
	d.known = true
}

// OnHeader returns a trigger if header requires a round to be processed. An
// error means nothing could be decided for this header; the detector state is
// left untouched and the next header is handled normally.
func (d *RoundDetector) OnHeader(ctx context.Context, header types.Header) (*RoundTrigger, error) {
	if d.cfg.FrozenTailEnabled && header.Height > d.cfg.LastKnownHeight {
		return d.frozenTrigger(ctx)
	}

	if d.known && header.Height == d.state.RoundStartHeight {
		return &RoundTrigger{
			Kind:   TriggerBoundary,
			Round:  d.state.CurrentRound,
			Header: header,
		}, nil
	}

	events, err := d.chain.GetEvents(ctx, header.Hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get events at %d: %w", header.Height, err)
	}
	logMalformedRoundEvents(ctx, header, events)

	if next, started := NextBoundaryState(d.state, header, events); started {
		d.setState(next)
		log.Ctx(ctx).Info().
			Uint32("round", next.CurrentRound).
			Uint64("start_height", next.RoundStartHeight).
			Msgf("Starting round #%d at block #%d", next.CurrentRound, next.RoundStartHeight)
		return nil, nil
	}

	if !d.known {
		return d.bootstrap(ctx, header)
	}

	return nil, nil
}

// bootstrap recovers the boundary state from the chain's round descriptor.
// Only the running round may be triggered, never a past one.
func (d *RoundDetector) bootstrap(ctx context.Context, header types.Header) (*RoundTrigger, error) {
	info, err := d.chain.GetRoundInfo(ctx, header.Hash)
	if err != nil {
		return nil, fmt.Errorf("failed to recover round state at %d: %w", header.Height, err)
	}

	d.setState(RoundBoundaryState{
		RoundStartHeight: info.StartBlock,
		CurrentRound:     info.Round,
	})
	log.Ctx(ctx).Info().
		Uint32("round", info.Round).
		Uint64("start_height", info.StartBlock).
		Uint64("height", header.Height).
		Msg("Recovered round state from chain")

	if info.StartBlock > header.Height {
		return nil, nil
	}

	startHeader := header
	if info.StartBlock < header.Height {
		startHeader, err = d.chain.GetHeaderAt(ctx, info.StartBlock)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve start block of round %d: %w", info.Round, err)
		}
	}

	return &RoundTrigger{
		Kind:   TriggerBackfill,
		Round:  info.Round,
		Header: startHeader,
	}, nil
}

func (d *RoundDetector) frozenTrigger(ctx context.Context) (*RoundTrigger, error) {
	if d.frozenHeader == nil {
		header, err := d.chain.GetHeaderAt(ctx, d.cfg.LastKnownHeight)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve last known height %d: %w", d.cfg.LastKnownHeight, err)
		}
		d.frozenHeader = &header
	}

	return &RoundTrigger{
		Kind:   TriggerFrozen,
		Round:  d.cfg.LastKnownRound,
		Header: *d.frozenHeader,
	}, nil
}

func logMalformedRoundEvents(ctx context.Context, header types.Header, events []types.ChainEvent) {
	for _, event := range events {
		if event.Type() != types.EventNewMiningRound {
			continue
		}
		if _, err := event.RoundNumber(); err != nil {
			log.Ctx(ctx).Warn().
				Err(err).
				Uint64("height", header.Height).
				Msg("ignoring malformed new round event")
		}
	}
}
