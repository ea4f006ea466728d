package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedU32 uint32

type bigLike struct{ v uint64 }

func (b bigLike) Uint64() uint64 { return b.v }

func TestChainEvent_RoundNumber(t *testing.T) {
	newRound := func(fields ...any) ChainEvent {
		return ChainEvent{Pallet: "PhalaModule", Name: "NewMiningRound", Fields: fields}
	}

	tests := []struct {
		name      string
		event     ChainEvent
		expected  uint32
		malformed bool
	}{
		{name: "u32", event: newRound(uint32(2472)), expected: 2472},
		{name: "named u32", event: newRound(namedU32(12)), expected: 12},
		{name: "Uint64 method", event: newRound(bigLike{v: 3}), expected: 3},
		{name: "no fields", event: newRound(), malformed: true},
		{name: "string field", event: newRound("2472"), malformed: true},
		{name: "negative int", event: newRound(-1), malformed: true},
		{name: "overflow", event: newRound(uint64(1) << 40), malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			round, err := tt.event.RoundNumber()
			if tt.malformed {
				require.ErrorIs(t, err, ErrMalformedEvent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, round)
		})
	}

	t.Run("other event type", func(t *testing.T) {
		_, err := ChainEvent{Pallet: "System", Name: "ExtrinsicSuccess"}.RoundNumber()
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrMalformedEvent)
	})
}
