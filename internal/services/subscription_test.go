package services

import (
	"context"
	"testing"
	"time"

	"github.com/stakepad/stakepad-round-indexer/internal/types"
	"github.com/stakepad/stakepad-round-indexer/testutil"
	"github.com/stakepad/stakepad-round-indexer/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSubscribeToFinalizedHeads(t *testing.T) {
	ctx := context.Background()
	chain := mocks.NewChainInterface(t)
	f := newServiceFixture(t, chain)
	f.service.detector.setState(RoundBoundaryState{RoundStartHeight: 51, CurrentRound: 7})

	quietHeader := testutil.RandomHeader(50)
	startHeader := testutil.RandomHeader(51)
	failingHeader := testutil.RandomHeader(52)

	headers := make(chan types.Header, 3)
	headers <- quietHeader
	headers <- startHeader
	headers <- failingHeader
	close(headers)

	chain.On("SubscribeFinalizedHeads", mock.Anything).Return((<-chan types.Header)(headers), nil).Once()
	chain.On("GetEvents", mock.Anything, quietHeader.Hash).Return(nil, nil).Once()
	chain.On("GetEvents", mock.Anything, failingHeader.Hash).Return(nil, errConnectionReset).Once()

	// a failing header doesn't stop the loop, only the closed stream does
	err := f.service.SubscribeToFinalizedHeads(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "subscription closed")
	assert.Equal(t, 1, f.qm.Len())
}

func TestSubscribeToFinalizedHeads_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	chain := mocks.NewChainInterface(t)
	f := newServiceFixture(t, chain)

	headers := make(chan types.Header)
	chain.On("SubscribeFinalizedHeads", mock.Anything).Return((<-chan types.Header)(headers), nil).Once()

	cancel()
	require.NoError(t, f.service.SubscribeToFinalizedHeads(ctx))
}

func TestEnqueueRound(t *testing.T) {
	ctx := context.Background()

	t.Run("frozen triggers are coalesced", func(t *testing.T) {
		f := newServiceFixture(t, newFakeChain())
		frozen := RoundTrigger{Kind: TriggerFrozen, Round: 5, Header: testutil.RandomHeader(100)}

		for range 3 {
			f.service.enqueueRound(ctx, frozen)
		}
		assert.Equal(t, 1, f.qm.Len())
		assert.True(t, f.service.frozenPending.Load())

		// other triggers are queued behind it
		f.service.enqueueRound(ctx, RoundTrigger{Kind: TriggerBoundary, Round: 6, Header: testutil.RandomHeader(120)})
		assert.Equal(t, 2, f.qm.Len())
	})
	t.Run("full queue releases the frozen slot", func(t *testing.T) {
		f := newServiceFixture(t, newFakeChain())
		for i := range testConfig().Queue.Capacity {
			f.service.enqueueRound(ctx, RoundTrigger{Kind: TriggerBoundary, Round: uint32(i), Header: testutil.RandomHeader(1)})
		}

		f.service.enqueueRound(ctx, RoundTrigger{Kind: TriggerFrozen, Round: 5, Header: testutil.RandomHeader(100)})
		assert.False(t, f.service.frozenPending.Load())
	})
	t.Run("boundary trigger waits for room until cancelled", func(t *testing.T) {
		f := newServiceFixture(t, newFakeChain())
		for i := range testConfig().Queue.Capacity {
			f.service.enqueueRound(ctx, RoundTrigger{Kind: TriggerBoundary, Round: uint32(i), Header: testutil.RandomHeader(1)})
		}

		start := time.Now()
		waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		f.service.enqueueRound(waitCtx, RoundTrigger{Kind: TriggerBoundary, Round: 99, Header: testutil.RandomHeader(2)})
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
		assert.Equal(t, testConfig().Queue.Capacity, f.qm.Len())
	})
}
