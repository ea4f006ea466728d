package chainclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stakepad/stakepad-round-indexer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChainEvent(t *testing.T) {
	event := newChainEvent("PhalaModule.NewMiningRound", []any{uint32(7)})
	assert.Equal(t, "PhalaModule", event.Pallet)
	assert.Equal(t, "NewMiningRound", event.Name)
	assert.Equal(t, types.EventNewMiningRound, event.Type())

	round, err := event.RoundNumber()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), round)

	unnamed := newChainEvent("Unknown", nil)
	assert.Empty(t, unnamed.Pallet)
	assert.Equal(t, "Unknown", unnamed.Name)
}

func TestCallWithTimeout(t *testing.T) {
	t.Run("returns result", func(t *testing.T) {
		v, err := callWithTimeout(t.Context(), time.Second, func() (int, error) {
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("returns call error", func(t *testing.T) {
		callErr := errors.New("boom")
		_, err := callWithTimeout(t.Context(), time.Second, func() (int, error) {
			return 0, callErr
		})
		assert.ErrorIs(t, err, callErr)
	})

	t.Run("abandons slow call", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)

		_, err := callWithTimeout(t.Context(), 10*time.Millisecond, func() (int, error) {
			<-release
			return 1, nil
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
