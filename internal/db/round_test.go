//go:build integration

package db_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stakepad/stakepad-round-indexer/internal/db"
	"github.com/stakepad/stakepad-round-indexer/internal/db/model"
	"github.com/stakepad/stakepad-round-indexer/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCurrentRound(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	t.Run("not found", func(t *testing.T) {
		doc, err := testDB.GetCurrentRound(ctx)
		assert.True(t, db.IsNotFoundError(err))
		assert.Nil(t, doc)
	})
	t.Run("nil document", func(t *testing.T) {
		err := testDB.UpsertCurrentRound(ctx, nil)
		assert.Error(t, err)
	})
	t.Run("upsert overwrites in place", func(t *testing.T) {
		first := createRound(t, 2472)
		require.NoError(t, testDB.UpsertCurrentRound(ctx, first))

		found, err := testDB.GetCurrentRound(ctx)
		require.NoError(t, err)
		assert.Equal(t, first, found)

		second := createRound(t, 2473)
		require.NoError(t, testDB.UpsertCurrentRound(ctx, second))

		found, err = testDB.GetCurrentRound(ctx)
		require.NoError(t, err)
		assert.Equal(t, second, found)

		count, err := mongoDB.Collection(model.CurrentRoundCollection).CountDocuments(ctx, bson.M{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}

func TestHistoricalRound(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	t.Run("not found", func(t *testing.T) {
		doc, err := testDB.GetHistoricalRound(ctx, 1)
		assert.True(t, db.IsNotFoundError(err))
		assert.Nil(t, doc)
	})
	t.Run("save and get", func(t *testing.T) {
		rounds := []uint32{10, 11, 12}
		docs := make(map[uint32]*model.RoundSnapshotDocument)
		for _, r := range rounds {
			doc := createRound(t, r)
			docs[r] = doc
			require.NoError(t, testDB.SaveHistoricalRound(ctx, doc))
		}

		for _, r := range rounds {
			found, err := testDB.GetHistoricalRound(ctx, r)
			require.NoError(t, err)
			assert.Equal(t, docs[r], found)
		}
	})
	t.Run("duplicate round", func(t *testing.T) {
		doc := createRound(t, 20)
		require.NoError(t, testDB.SaveHistoricalRound(ctx, doc))

		overwrite := createRound(t, 20)
		err := testDB.SaveHistoricalRound(ctx, overwrite)
		require.Error(t, err)
		assert.True(t, db.IsDuplicateKeyError(err))

		// first write wins
		found, err := testDB.GetHistoricalRound(ctx, 20)
		require.NoError(t, err)
		assert.Equal(t, doc, found)
	})
}

func createRound(t *testing.T, round uint32) *model.RoundSnapshotDocument {
	t.Helper()

	blockTime := gofakeit.Int64()
	stash := testutil.RandomAccountID().Hex()
	payout := testutil.RandomAccountID().Hex()

	return &model.RoundSnapshotDocument{
		Round:                  round,
		UpdatedAt:              gofakeit.Int64(),
		BlockHeight:            uint64(gofakeit.IntRange(1, 10_000_000)),
		BlockHash:              testutil.RandomBlockHash().Hex(),
		BlockTime:              &blockTime,
		RoundCycleTime:         3600,
		AccumulatedReward:      testutil.RandomBalance().String(),
		AccumulatedRewardHuman: gofakeit.Float64(),
		OnlineWorkerCount:      gofakeit.Uint32(),
		TotalPower:             gofakeit.Uint32(),
		AccumulatedStake:       testutil.RandomBalance().String(),
		AccumulatedStakeHuman:  "1.2340k",
		StakeSum:               gofakeit.Float64(),
		StashCount:             1,
		WorkerCount:            1,
		AvgStake:               gofakeit.Float64(),
		AvgReward:              gofakeit.Float64(),
		AvgScore:               gofakeit.Float64(),
		StakeSupplyRatio:       gofakeit.Float64(),
		PreviousRoundReward:    gofakeit.Float64(),
		StashAccounts: []model.StashAccountDocument{{
			Stash:           stash,
			Controller:      testutil.RandomAccountID().Hex(),
			Payout:          payout,
			Commission:      gofakeit.Uint32(),
			OverallScore:    gofakeit.Uint32(),
			Stake:           testutil.RandomBalance().String(),
			WorkerStake:     testutil.RandomBalance().String(),
			UserStake:       testutil.RandomBalance().String(),
			StakeAccountNum: gofakeit.IntRange(0, 100),
		}},
		PayoutAccounts: []model.PayoutAccountDocument{{
			Account:             payout,
			RewardAccrued:       testutil.RandomBalance().String(),
			RewardAccruedHuman:  "12.0000",
			WorkerCount:         1,
			PayoutComputeReward: gofakeit.Uint32(),
			Stake:               testutil.RandomBalance().String(),
			StakeHuman:          "1.0000M",
			StakeRatio:          gofakeit.Float64(),
		}},
		Workers: []model.WorkerDocument{{
			StashAccount:     stash,
			Payout:           payout,
			AccumulatedStake: gofakeit.Float64(),
			TaskScore:        gofakeit.Float64(),
			MachineScore:     gofakeit.Uint32(),
			OnlineReward:     1021,
		}},
	}
}
