package model

import (
	"slices"

	"github.com/shopspring/decimal"
	"github.com/stakepad/stakepad-round-indexer/internal/aggregator"
	"github.com/stakepad/stakepad-round-indexer/internal/types"
)

const (
	CurrentRoundCollection = "realtime_round_info"
	HistoryRoundCollection = "history_round_info"
)

type StashAccountDocument struct {
	Stash           string `bson:"stash"`
	Controller      string `bson:"controller"`
	Payout          string `bson:"payout"`
	Commission      uint32 `bson:"commission"`
	OverallScore    uint32 `bson:"overall_score"`
	Stake           string `bson:"stake"`
	WorkerStake     string `bson:"worker_stake"`
	UserStake       string `bson:"user_stake"`
	StakeAccountNum int    `bson:"stake_account_num"`
}

type PayoutAccountDocument struct {
	Account             string  `bson:"account"`
	RewardAccrued       string  `bson:"reward_accrued"`
	RewardAccruedHuman  string  `bson:"reward_accrued_human"`
	WorkerCount         int     `bson:"worker_count"`
	PayoutComputeReward uint32  `bson:"payout_compute_reward"`
	Stake               string  `bson:"stake"`
	StakeHuman          string  `bson:"stake_human"`
	StakeRatio          float64 `bson:"stake_ratio"`
}

type WorkerDocument struct {
	StashAccount      string  `bson:"stash_account"`
	ControllerAccount string  `bson:"controller_account"`
	Payout            string  `bson:"payout"`
	AccumulatedStake  float64 `bson:"accumulated_stake"`
	WorkerStake       float64 `bson:"worker_stake"`
	UserStake         float64 `bson:"user_stake"`
	StakeAccountNum   int     `bson:"stake_account_num"`
	Commission        uint32  `bson:"commission"`
	TaskScore         float64 `bson:"task_score"`
	MachineScore      uint32  `bson:"machine_score"`
	// the fields below are placeholders until the chain exposes them
	OnlineReward  int `bson:"online_reward"`
	ComputeReward int `bson:"compute_reward"`
	Reward        int `bson:"reward"`
	APY           int `bson:"apy"`
	Penalty       int `bson:"penalty"`
}

// RoundSnapshotDocument is stored once as the current round and once per
// completed round in the history collection. Account lists are sorted by raw
// account id.
type RoundSnapshotDocument struct {
	Round       uint32 `bson:"round"`
	UpdatedAt   int64  `bson:"updated_at"`
	BlockHeight uint64 `bson:"block_height"`
	BlockHash   string `bson:"block_hash"`
	BlockTime   *int64 `bson:"block_time"`
	// RoundCycleTime is in seconds.
	RoundCycleTime int64 `bson:"round_cycle_time"`

	AccumulatedReward      string  `bson:"accumulated_reward"`
	AccumulatedRewardHuman float64 `bson:"accumulated_reward_human"`
	OnlineWorkerCount      uint32  `bson:"online_worker_count"`
	TotalPower             uint32  `bson:"total_power"`
	AccumulatedStake       string  `bson:"accumulated_stake"`
	AccumulatedStakeHuman  string  `bson:"accumulated_stake_human"`
	StakeSum               float64 `bson:"stake_sum"`
	StashCount             int     `bson:"stash_count"`
	WorkerCount            int     `bson:"worker_count"`

	AvgStake            float64 `bson:"avg_stake"`
	AvgReward           float64 `bson:"avg_reward"`
	AvgScore            float64 `bson:"avg_score"`
	StakeSupplyRatio    float64 `bson:"stake_supply_ratio"`
	PreviousRoundReward float64 `bson:"previous_round_reward"`

	StashAccounts  []StashAccountDocument  `bson:"stash_accounts"`
	PayoutAccounts []PayoutAccountDocument `bson:"payout_accounts"`
	Workers        []WorkerDocument        `bson:"workers"`
}

// FromRoundSnapshot converts aggregated metrics of round read at header.
// Accounts are rendered as SS58 addresses with ss58Prefix. Supply ratio,
// previous reward and timestamps are left to the caller.
func FromRoundSnapshot(
	round uint32, header types.Header, snapshot *aggregator.RoundSnapshot, ss58Prefix uint16,
) *RoundSnapshotDocument {
	addr := func(id types.AccountID) string {
		return id.SS58(ss58Prefix)
	}

	doc := &RoundSnapshotDocument{
		Round:                  round,
		BlockHeight:            header.Height,
		BlockHash:              header.Hash.Hex(),
		AccumulatedReward:      snapshot.AccumulatedReward.String(),
		AccumulatedRewardHuman: snapshot.AccumulatedRewardHuman.InexactFloat64(),
		OnlineWorkerCount:      snapshot.OnlineWorkerCount,
		TotalPower:             snapshot.TotalPower,
		AccumulatedStake:       snapshot.AccumulatedStake.String(),
		AccumulatedStakeHuman:  snapshot.AccumulatedStakeHuman,
		StakeSum:               snapshot.StakeSum.InexactFloat64(),
		StashCount:             snapshot.StashCount,
		WorkerCount:            snapshot.StashCount,
		AvgStake:               snapshot.AvgStake.InexactFloat64(),
		AvgReward:              snapshot.AvgReward.InexactFloat64(),
		AvgScore:               snapshot.AvgScore.InexactFloat64(),
		StashAccounts:          make([]StashAccountDocument, 0, len(snapshot.StashAccounts)),
		PayoutAccounts:         make([]PayoutAccountDocument, 0, len(snapshot.PayoutAccounts)),
		Workers:                make([]WorkerDocument, 0, len(snapshot.Workers)),
	}

	for _, id := range sortedKeys(snapshot.StashAccounts) {
		s := snapshot.StashAccounts[id]
		doc.StashAccounts = append(doc.StashAccounts, StashAccountDocument{
			Stash:           addr(s.Stash),
			Controller:      addr(s.Controller),
			Payout:          addr(s.PayoutTarget),
			Commission:      s.Commission,
			OverallScore:    s.OverallScore,
			Stake:           s.StakeTotal.String(),
			WorkerStake:     s.WorkerOwnStake.String(),
			UserStake:       s.DelegatedUserStake.String(),
			StakeAccountNum: s.DelegatorCount,
		})
	}

	for _, id := range sortedKeys(snapshot.PayoutAccounts) {
		p := snapshot.PayoutAccounts[id]
		doc.PayoutAccounts = append(doc.PayoutAccounts, PayoutAccountDocument{
			Account:             addr(p.Account),
			RewardAccrued:       p.RewardAccrued.String(),
			RewardAccruedHuman:  p.RewardAccruedHuman,
			WorkerCount:         p.WorkerCount,
			PayoutComputeReward: p.ComputeReward,
			Stake:               p.StakeTotal.String(),
			StakeHuman:          p.StakeHuman,
			StakeRatio:          p.StakeRatio.InexactFloat64(),
		})
	}

	for _, w := range snapshot.Workers {
		doc.Workers = append(doc.Workers, WorkerDocument{
			StashAccount:      addr(w.Stash),
			ControllerAccount: addr(w.Controller),
			Payout:            addr(w.Payout),
			AccumulatedStake:  w.AccumulatedStake.InexactFloat64(),
			WorkerStake:       w.WorkerStake.InexactFloat64(),
			UserStake:         w.UserStake.InexactFloat64(),
			StakeAccountNum:   w.StakeAccountNum,
			Commission:        w.Commission,
			TaskScore:         w.TaskScore,
			MachineScore:      w.MachineScore,
			OnlineReward:      w.OnlineReward,
			ComputeReward:     w.ComputeReward,
			Reward:            w.Reward,
			APY:               w.APY,
			Penalty:           w.Penalty,
		})
	}

	return doc
}

// SetStakeSupplyRatio stores the ratio narrowed to float64.
func (d *RoundSnapshotDocument) SetStakeSupplyRatio(ratio decimal.Decimal) {
	d.StakeSupplyRatio = ratio.InexactFloat64()
}

func sortedKeys[V any](m map[types.AccountID]V) []types.AccountID {
	keys := make([]types.AccountID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, types.AccountID.Compare)
	return keys
}
