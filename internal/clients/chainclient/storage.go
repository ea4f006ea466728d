package chainclient

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/stakepad/stakepad-round-indexer/internal/types"
)

const storagePrefixLen = 32

// StorageItem names a pallet storage entry. Its key prefix is
// twox128(pallet) ++ twox128(name).
type StorageItem struct {
	Pallet string
	Name   string
}

func (s StorageItem) String() string {
	return s.Pallet + "." + s.Name
}

// Prefix is the full key of a plain value and the common prefix of every
// entry of a map.
func (s StorageItem) Prefix() types.StorageKey {
	key := make([]byte, 0, storagePrefixLen)
	key = append(key, twox128([]byte(s.Pallet))...)
	key = append(key, twox128([]byte(s.Name))...)
	return key
}

var (
	AccumulatedFire2    = StorageItem{Pallet: "PhalaModule", Name: "AccumulatedFire2"}
	OnlineWorkers       = StorageItem{Pallet: "PhalaModule", Name: "OnlineWorkers"}
	TotalPower          = StorageItem{Pallet: "PhalaModule", Name: "TotalPower"}
	StashState          = StorageItem{Pallet: "PhalaModule", Name: "StashState"}
	Fire2               = StorageItem{Pallet: "PhalaModule", Name: "Fire2"}
	PayoutComputeReward = StorageItem{Pallet: "PhalaModule", Name: "PayoutComputeReward"}
	WorkerState         = StorageItem{Pallet: "PhalaModule", Name: "WorkerState"}
	Round               = StorageItem{Pallet: "PhalaModule", Name: "Round"}
	StakeReceived       = StorageItem{Pallet: "MiningStaking", Name: "StakeReceived"}
	Staked              = StorageItem{Pallet: "MiningStaking", Name: "Staked"}
)

func twox128(data []byte) []byte {
	out := make([]byte, 16)
	for i := range 2 {
		h := xxhash.NewWithSeed(uint64(i))
		_, _ = h.Write(data)
		binary.LittleEndian.PutUint64(out[i*8:], h.Sum64())
	}
	return out
}

// AccountFromMapKey recovers the account id of a map keyed by a concat hasher
// (Twox64Concat, Blake2_128Concat): the raw id is the key tail.
func AccountFromMapKey(key types.StorageKey) (types.AccountID, error) {
	if len(key) < storagePrefixLen+types.AccountIDLen {
		return types.AccountID{}, fmt.Errorf("storage key %s too short for an account map", key.Hex())
	}
	return types.NewAccountID(key[len(key)-types.AccountIDLen:])
}

// AccountsFromDoubleMapKey splits a (from, to) double map key. Both hashers
// must have the same width, which is derived from the key length.
func AccountsFromDoubleMapKey(key types.StorageKey) (types.AccountID, types.AccountID, error) {
	var from, to types.AccountID

	rest := len(key) - storagePrefixLen - 2*types.AccountIDLen
	if rest < 0 || rest%2 != 0 {
		return from, to, fmt.Errorf("storage key %s has unexpected length %d for a double map", key.Hex(), len(key))
	}
	hasherLen := rest / 2

	fromStart := storagePrefixLen + hasherLen
	from, err := types.NewAccountID(key[fromStart : fromStart+types.AccountIDLen])
	if err != nil {
		return from, to, err
	}
	to, err = types.NewAccountID(key[len(key)-types.AccountIDLen:])
	if err != nil {
		return from, to, err
	}

	return from, to, nil
}
