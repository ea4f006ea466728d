//go:build integration

package db_test

import (
	"testing"

	"github.com/stakepad/stakepad-round-indexer/internal/db"
	"github.com/stakepad/stakepad-round-indexer/internal/db/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkInfo(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	t.Run("not found", func(t *testing.T) {
		info, err := testDB.GetNetworkInfo(ctx)
		assert.True(t, db.IsNotFoundError(err))
		assert.Nil(t, info)
	})
	t.Run("nil", func(t *testing.T) {
		assert.Error(t, testDB.UpsertNetworkInfo(ctx, nil))
	})
	t.Run("runtime upgrade keeps a single document", func(t *testing.T) {
		for _, version := range []uint32{1250, 1251} {
			info := &model.NetworkInfo{
				Chain:          "Khala",
				NodeName:       "Khala Node",
				NodeVersion:    "0.1.24",
				RuntimeVersion: version,
			}
			require.NoError(t, testDB.UpsertNetworkInfo(ctx, info))

			stored, err := testDB.GetNetworkInfo(ctx)
			require.NoError(t, err)
			assert.Equal(t, info, stored)
		}

		count, err := mongoDB.Collection(model.NetworkInfoCollection).CountDocuments(ctx, map[string]any{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}
