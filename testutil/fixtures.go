package testutil

import (
	sdkmath "cosmossdk.io/math"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stakepad/stakepad-round-indexer/internal/types"
)

func RandomAccountID() types.AccountID {
	var id types.AccountID
	for i := range id {
		id[i] = gofakeit.Uint8()
	}
	return id
}

func RandomBlockHash() types.BlockHash {
	var h types.BlockHash
	for i := range h {
		h[i] = gofakeit.Uint8()
	}
	return h
}

func RandomHeader(height uint64) types.Header {
	return types.Header{Height: height, Hash: RandomBlockHash()}
}

// RandomBalance returns a raw balance between 1 and 10^6 PHA.
func RandomBalance() sdkmath.Int {
	pha := gofakeit.IntRange(1, 1_000_000)
	return sdkmath.NewInt(int64(pha)).Mul(sdkmath.NewInt(1_000_000_000_000))
}

// Pha returns n PHA in raw units.
func Pha(n int64) sdkmath.Int {
	return sdkmath.NewInt(n).Mul(sdkmath.NewInt(1_000_000_000_000))
}
