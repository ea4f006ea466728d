package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stakepad/stakepad-round-indexer/internal/clients/chainclient"
	"github.com/stakepad/stakepad-round-indexer/internal/types"
	"github.com/stakepad/stakepad-round-indexer/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotReader_ReadSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("reads every map at one hash", func(t *testing.T) {
		s := newRoundScenario()
		hash := testutil.RandomBlockHash()

		raw, err := NewSnapshotReader(s.chain, 4).ReadSnapshot(ctx, hash)
		require.NoError(t, err)

		assert.Equal(t, hash, raw.BlockHash)
		assert.True(t, testutil.Pha(1000).Equal(raw.AccumulatedReward))
		assert.EqualValues(t, 1, raw.OnlineWorkers)
		assert.EqualValues(t, 150, raw.TotalPower)

		require.Len(t, raw.Stashes, 2)
		assert.Equal(t, s.payout, raw.Stashes[s.stashA].PayoutTarget)
		assert.Equal(t, s.stashA, raw.Stashes[s.stashA].Controller)
		assert.EqualValues(t, 100_000, raw.Stashes[s.stashA].Commission)

		require.Len(t, raw.RewardAccrued, 2)
		assert.True(t, testutil.Pha(3).Equal(raw.RewardAccrued[s.orphan]))
		assert.Equal(t, map[types.AccountID]uint32{s.payout: 7}, raw.PayoutComputeReward)

		require.Len(t, raw.Workers, 2)
		assert.Equal(t, types.WorkerInfo{State: types.StateMining, OverallScore: 100}, raw.Workers[s.stashA])
		assert.Equal(t, types.StateFree, raw.Workers[s.stashB].State)

		require.Len(t, raw.StakeReceived, 2)
		require.Len(t, raw.Delegations, 2)
		for _, d := range raw.Delegations {
			assert.Equal(t, s.stashA, d.To)
		}

		assert.Equal(t, []types.BlockHash{hash}, s.chain.seenHashes())
	})
	t.Run("empty chain", func(t *testing.T) {
		raw, err := NewSnapshotReader(newFakeChain(), 4).ReadSnapshot(ctx, testutil.RandomBlockHash())
		require.NoError(t, err)

		assert.True(t, raw.AccumulatedReward.IsZero())
		assert.Empty(t, raw.Stashes)
		assert.Empty(t, raw.Delegations)
	})
	t.Run("absent and malformed values are skipped", func(t *testing.T) {
		s := newRoundScenario()
		s.chain.putMap(chainclient.StashState, accountOf(9), nil)
		s.chain.putMap(chainclient.WorkerState, accountOf(9),
			fmt.Errorf("%w: invalid mining state index: 12", chainclient.ErrMalformedStorage))

		raw, err := NewSnapshotReader(s.chain, 4).ReadSnapshot(ctx, testutil.RandomBlockHash())
		require.NoError(t, err)

		assert.Len(t, raw.Stashes, 2)
		assert.Len(t, raw.Workers, 2)
		assert.NotContains(t, raw.Workers, accountOf(9))
	})
	t.Run("transport error aborts the read", func(t *testing.T) {
		s := newRoundScenario()
		s.chain.putMap(chainclient.StakeReceived, accountOf(9), errConnectionReset)

		raw, err := NewSnapshotReader(s.chain, 1).ReadSnapshot(ctx, testutil.RandomBlockHash())
		require.ErrorIs(t, err, errConnectionReset)
		assert.Nil(t, raw)
	})
}
