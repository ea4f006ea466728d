package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/stakepad/stakepad-round-indexer/internal/clients/chainclient"
	"github.com/stakepad/stakepad-round-indexer/internal/types"
)

// SnapshotReader reads every storage item a round needs at one block hash.
type SnapshotReader struct {
	chain              chainclient.ChainInterface
	maxConcurrentReads int
}

func NewSnapshotReader(chain chainclient.ChainInterface, maxConcurrentReads int) *SnapshotReader {
	return &SnapshotReader{
		chain:              chain,
		maxConcurrentReads: max(1, maxConcurrentReads),
	}
}

type storageEntry[V any] struct {
	key   types.StorageKey
	value V
}

// ReadSnapshot fails as a whole on any transport error, a partial snapshot is
// never returned. Keys without a value or with an undecodable one are skipped.
func (r *SnapshotReader) ReadSnapshot(ctx context.Context, hash types.BlockHash) (*types.RawSnapshot, error) {
	snapshot := types.NewRawSnapshot(hash)

	reward, _, err := chainclient.ReadBalance(ctx, r.chain, chainclient.AccumulatedFire2.Prefix(), hash)
	if err != nil {
		return nil, err
	}
	snapshot.AccumulatedReward = reward

	if _, err := r.chain.GetStorage(ctx, chainclient.OnlineWorkers.Prefix(), &snapshot.OnlineWorkers, hash); err != nil {
		return nil, err
	}
	if _, err := r.chain.GetStorage(ctx, chainclient.TotalPower.Prefix(), &snapshot.TotalPower, hash); err != nil {
		return nil, err
	}

	stashes, err := readMap[chainclient.StashInfo](ctx, r, chainclient.StashState, hash)
	if err != nil {
		return nil, err
	}
	forEachAccount(ctx, stashes, func(id types.AccountID, v chainclient.StashInfo) {
		snapshot.Stashes[id] = v.Info()
	})

	accrued, err := readMap[chainclient.Balance](ctx, r, chainclient.Fire2, hash)
	if err != nil {
		return nil, err
	}
	forEachAccount(ctx, accrued, func(id types.AccountID, v chainclient.Balance) {
		snapshot.RewardAccrued[id] = v.Int()
	})

	computeRewards, err := readMap[uint32](ctx, r, chainclient.PayoutComputeReward, hash)
	if err != nil {
		return nil, err
	}
	forEachAccount(ctx, computeRewards, func(id types.AccountID, v uint32) {
		snapshot.PayoutComputeReward[id] = v
	})

	workers, err := readMap[chainclient.WorkerInfo](ctx, r, chainclient.WorkerState, hash)
	if err != nil {
		return nil, err
	}
	forEachAccount(ctx, workers, func(id types.AccountID, v chainclient.WorkerInfo) {
		snapshot.Workers[id] = v.Info()
	})

	stakes, err := readMap[chainclient.Balance](ctx, r, chainclient.StakeReceived, hash)
	if err != nil {
		return nil, err
	}
	forEachAccount(ctx, stakes, func(id types.AccountID, v chainclient.Balance) {
		snapshot.StakeReceived[id] = v.Int()
	})

	delegations, err := readMap[chainclient.Balance](ctx, r, chainclient.Staked, hash)
	if err != nil {
		return nil, err
	}
	for _, entry := range delegations {
		from, to, err := chainclient.AccountsFromDoubleMapKey(entry.key)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("skipping unparsable delegation key")
			continue
		}
		snapshot.Delegations = append(snapshot.Delegations, types.StakeDelegation{
			From:   from,
			To:     to,
			Amount: entry.value.Int(),
		})
	}

	return snapshot, nil
}

// readMap enumerates item at hash and fetches all values concurrently. The
// first transport error cancels the remaining fetches.
func readMap[V any](
	ctx context.Context, r *SnapshotReader, item chainclient.StorageItem, hash types.BlockHash,
) ([]storageEntry[V], error) {
	keys, err := r.chain.GetKeys(ctx, item, hash)
	if err != nil {
		return nil, err
	}

	p := pool.NewWithResults[*storageEntry[V]]().
		WithContext(ctx).
		WithMaxGoroutines(r.maxConcurrentReads).
		WithCancelOnError().
		WithFirstError()

	for _, key := range keys {
		p.Go(func(ctx context.Context) (*storageEntry[V], error) {
			var value V
			ok, err := r.chain.GetStorage(ctx, key, &value, hash)
			if errors.Is(err, chainclient.ErrMalformedStorage) {
				log.Ctx(ctx).Warn().Err(err).Stringer("item", item).Msg("skipping malformed storage value")
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, nil
			}
			return &storageEntry[V]{key: key, value: value}, nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", item, err)
	}

	entries := make([]storageEntry[V], 0, len(results))
	for _, entry := range results {
		if entry != nil {
			entries = append(entries, *entry)
		}
	}

	log.Ctx(ctx).Debug().
		Stringer("item", item).
		Int("keys", len(keys)).
		Int("values", len(entries)).
		Msg("storage map read")

	return entries, nil
}

func forEachAccount[V any](ctx context.Context, entries []storageEntry[V], f func(types.AccountID, V)) {
	for _, entry := range entries {
		id, err := chainclient.AccountFromMapKey(entry.key)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("skipping unparsable storage key")
			continue
		}
		f(id, entry.value)
	}
}
