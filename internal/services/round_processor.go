package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stakepad/stakepad-round-indexer/internal/aggregator"
	"github.com/stakepad/stakepad-round-indexer/internal/db"
	"github.com/stakepad/stakepad-round-indexer/internal/db/model"
	"github.com/stakepad/stakepad-round-indexer/internal/observability/metrics"
	"github.com/stakepad/stakepad-round-indexer/internal/observability/tracing"
)

// ProcessRound materializes the snapshot of trigger as the current round. It
// must only run from the queue, the current round document has a single
// writer.
func (s *Service) ProcessRound(ctx context.Context, trigger RoundTrigger) error {
	startTime := time.Now()

	ctx = tracing.InjectTraceID(ctx)
	ctx = tracing.WithFields(ctx, map[string]any{
		"round":   trigger.Round,
		"height":  trigger.Header.Height,
		"trigger": trigger.Kind.String(),
	})

	status, err := s.processRound(ctx, trigger)
	metrics.RecordRoundProcessingDuration(time.Since(startTime), trigger.Kind.String(), status)

	return err
}

func (s *Service) processRound(ctx context.Context, trigger RoundTrigger) (metrics.Outcome, error) {
	current, err := s.db.GetCurrentRound(ctx)
	if err != nil && !db.IsNotFoundError(err) {
		return metrics.Error, fmt.Errorf("failed to fetch current round: %w", err)
	}

	if current != nil && isMaterialized(current, trigger) {
		log.Ctx(ctx).Debug().Msg("round already materialized, skipping")
		return metrics.Skipped, nil
	}

	// history must hold the previous round before its reward is looked up
	if current != nil && current.Round < trigger.Round {
		if err := s.archiveRound(ctx, current); err != nil {
			return metrics.Error, err
		}
	}

	doc, err := s.BuildRoundDocument(ctx, trigger)
	if err != nil {
		return outcomeOf(ctx), err
	}

	// results of an abandoned job are discarded
	if err := ctx.Err(); err != nil {
		return metrics.Timeout, fmt.Errorf("round %d abandoned before saving: %w", trigger.Round, err)
	}

	doc.UpdatedAt = time.Now().Unix()
	if err := s.db.UpsertCurrentRound(ctx, doc); err != nil {
		return outcomeOf(ctx), fmt.Errorf("failed to save round %d: %w", trigger.Round, err)
	}

	metrics.RecordLastProcessedRound(trigger.Round)
	log.Ctx(ctx).Info().
		Int("stash_count", doc.StashCount).
		Int("online_stashes", len(doc.StashAccounts)).
		Int("payout_accounts", len(doc.PayoutAccounts)).
		Str("accumulated_stake", doc.AccumulatedStakeHuman).
		Msg("Round snapshot saved")

	return metrics.Success, nil
}

// BuildRoundDocument reads, aggregates and enriches the snapshot of trigger
// without persisting anything.
func (s *Service) BuildRoundDocument(ctx context.Context, trigger RoundTrigger) (*model.RoundSnapshotDocument, error) {
	raw, err := s.reader.ReadSnapshot(ctx, trigger.Header.Hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot of round %d: %w", trigger.Round, err)
	}

	snapshot := aggregator.Aggregate(raw)
	doc := model.FromRoundSnapshot(trigger.Round, trigger.Header, snapshot, s.cfg.Chain.SS58Prefix)
	doc.RoundCycleTime = int64(s.cfg.Round.CycleTime / time.Second)

	supply, err := s.supply.GetAvailableSupply(ctx)
	if err != nil {
		return nil, err
	}
	doc.SetStakeSupplyRatio(aggregator.StakeSupplyRatio(snapshot.StakeSum, supply))

	previousReward, err := s.previousRoundReward(ctx, trigger.Round)
	if err != nil {
		return nil, err
	}
	doc.PreviousRoundReward = previousReward

	return doc, nil
}

func (s *Service) previousRoundReward(ctx context.Context, round uint32) (float64, error) {
	if round == 0 {
		return 0, nil
	}

	previous, err := s.db.GetHistoricalRound(ctx, round-1)
	if err != nil {
		if db.IsNotFoundError(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to fetch round %d from history: %w", round-1, err)
	}

	return previous.AccumulatedRewardHuman, nil
}

func (s *Service) archiveRound(ctx context.Context, doc *model.RoundSnapshotDocument) error {
	err := s.db.SaveHistoricalRound(ctx, doc)
	if err != nil {
		if db.IsDuplicateKeyError(err) {
			log.Ctx(ctx).Debug().Uint32("archived_round", doc.Round).Msg("round already archived")
			return nil
		}
		return fmt.Errorf("failed to archive round %d: %w", doc.Round, err)
	}

	log.Ctx(ctx).Info().Uint32("archived_round", doc.Round).Msg("Round archived")
	return nil
}

// isMaterialized reports whether current already is the snapshot trigger
// asks for. Live boundaries and manual runs are always processed.
func isMaterialized(current *model.RoundSnapshotDocument, trigger RoundTrigger) bool {
	switch trigger.Kind {
	case TriggerFrozen, TriggerBackfill:
		return current.Round == trigger.Round && current.BlockHeight == trigger.Header.Height
	default:
		return false
	}
}

func outcomeOf(ctx context.Context) metrics.Outcome {
	if ctx.Err() != nil {
		return metrics.Timeout
	}
	return metrics.Error
}
