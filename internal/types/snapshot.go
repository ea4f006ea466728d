package types

import (
	sdkmath "cosmossdk.io/math"
)

type StashInfo struct {
	Controller   AccountID
	PayoutTarget AccountID
	// Commission is the on-chain permill value, stored untouched.
	Commission uint32
}

type WorkerInfo struct {
	State        MiningState
	OverallScore uint32
}

// StakeDelegation is one entry of the (from, to) staking double map.
type StakeDelegation struct {
	From   AccountID
	To     AccountID
	Amount sdkmath.Int
}

// RawSnapshot bundles every storage read needed for one round. All values were
// read at BlockHash.
type RawSnapshot struct {
	BlockHash BlockHash

	AccumulatedReward sdkmath.Int
	OnlineWorkers     uint32
	TotalPower        uint32

	Stashes             map[AccountID]StashInfo
	RewardAccrued       map[AccountID]sdkmath.Int
	PayoutComputeReward map[AccountID]uint32
	Workers             map[AccountID]WorkerInfo
	StakeReceived       map[AccountID]sdkmath.Int
	Delegations         []StakeDelegation
}

func NewRawSnapshot(hash BlockHash) *RawSnapshot {
	return &RawSnapshot{
		BlockHash:           hash,
		AccumulatedReward:   sdkmath.ZeroInt(),
		Stashes:             make(map[AccountID]StashInfo),
		RewardAccrued:       make(map[AccountID]sdkmath.Int),
		PayoutComputeReward: make(map[AccountID]uint32),
		Workers:             make(map[AccountID]WorkerInfo),
		StakeReceived:       make(map[AccountID]sdkmath.Int),
	}
}
