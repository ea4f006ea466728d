package aggregator

import (
	"math"
	"slices"

	sdkmath "cosmossdk.io/math"
	"github.com/shopspring/decimal"
	"github.com/stakepad/stakepad-round-indexer/internal/types"
)

// Reward figures the chain doesn't expose yet. They are emitted as is and
// carry no measured meaning.
const (
	PlaceholderOnlineReward  = 1021
	PlaceholderComputeReward = 22
	PlaceholderReward        = 12345
	PlaceholderAPY           = 1
	PlaceholderPenalty       = 0
)

type StashRecord struct {
	Stash        types.AccountID
	Controller   types.AccountID
	PayoutTarget types.AccountID
	Commission   uint32
	OverallScore uint32
	Mining       bool

	StakeTotal         sdkmath.Int
	WorkerOwnStake     sdkmath.Int
	DelegatedUserStake sdkmath.Int
	DelegatorCount     int
}

type PayoutAccountRecord struct {
	Account            types.AccountID
	RewardAccrued      sdkmath.Int
	RewardAccruedHuman string
	WorkerCount        int
	ComputeReward      uint32
	StakeTotal         sdkmath.Int
	StakeHuman         string
	StakeRatio         decimal.Decimal
}

// Worker is the denormalized per-worker row of an online stash. Stake figures
// are human-scaled.
type Worker struct {
	Stash            types.AccountID
	Controller       types.AccountID
	Payout           types.AccountID
	AccumulatedStake decimal.Decimal
	WorkerStake      decimal.Decimal
	UserStake        decimal.Decimal
	StakeAccountNum  int
	Commission       uint32
	TaskScore        float64
	MachineScore     uint32

	OnlineReward  int
	ComputeReward int
	Reward        int
	APY           int
	Penalty       int
}

type RoundSnapshot struct {
	AccumulatedReward      sdkmath.Int
	AccumulatedRewardHuman decimal.Decimal
	OnlineWorkerCount      uint32
	TotalPower             uint32

	AccumulatedStake      sdkmath.Int
	AccumulatedStakeHuman string
	// StakeSum is AccumulatedStake human-scaled.
	StakeSum         decimal.Decimal
	AccumulatedScore uint64
	// StashCount is the number of registered stashes, mining or not.
	StashCount int

	// StashAccounts only holds stashes in the Mining state.
	StashAccounts  map[types.AccountID]*StashRecord
	PayoutAccounts map[types.AccountID]*PayoutAccountRecord

	AvgStake  decimal.Decimal
	AvgReward decimal.Decimal
	AvgScore  decimal.Decimal

	// Workers is sorted by stash account.
	Workers []Worker
}

// Aggregate joins the storage maps of one snapshot into round metrics. Stash
// and payout records are only created by the first stage, later stages mutate
// them and ignore keys without a record.
func Aggregate(raw *types.RawSnapshot) *RoundSnapshot {
	stashes := buildStashRecords(raw.Stashes)
	payouts := buildPayoutRecords(raw.RewardAccrued)

	mergeComputeRewards(payouts, raw.PayoutComputeReward)
	accumulatedScore := applyWorkerStates(stashes, payouts, raw.Workers)
	accumulatedStake := applyStakeReceived(stashes, payouts, raw.StakeReceived)
	applyDelegations(stashes, raw.Delegations)
	deriveStakeRatios(payouts, accumulatedStake)

	online := make(map[types.AccountID]*StashRecord)
	for id, stash := range stashes {
		if stash.Mining {
			online[id] = stash
		}
	}

	stashCount := decimal.NewFromInt(int64(len(stashes)))
	stakeSum := ToHuman(accumulatedStake)
	rewardHuman := ToHuman(raw.AccumulatedReward)

	return &RoundSnapshot{
		AccumulatedReward:      raw.AccumulatedReward,
		AccumulatedRewardHuman: rewardHuman,
		OnlineWorkerCount:      raw.OnlineWorkers,
		TotalPower:             raw.TotalPower,
		AccumulatedStake:       accumulatedStake,
		AccumulatedStakeHuman:  FormatBalance(accumulatedStake),
		StakeSum:               stakeSum,
		AccumulatedScore:       accumulatedScore,
		StashCount:             len(stashes),
		StashAccounts:          online,
		PayoutAccounts:         payouts,
		AvgStake:               divOrZero(stakeSum, stashCount),
		AvgReward:              divOrZero(rewardHuman, stashCount),
		AvgScore: divOrZero(
			decimal.NewFromInt(int64(accumulatedScore)),
			decimal.NewFromInt(int64(raw.OnlineWorkers)),
		),
		Workers: buildWorkers(online),
	}
}

func buildStashRecords(stashes map[types.AccountID]types.StashInfo) map[types.AccountID]*StashRecord {
	records := make(map[types.AccountID]*StashRecord, len(stashes))
	for id, info := range stashes {
		records[id] = &StashRecord{
			Stash:              id,
			Controller:         info.Controller,
			PayoutTarget:       info.PayoutTarget,
			Commission:         info.Commission,
			StakeTotal:         sdkmath.ZeroInt(),
			WorkerOwnStake:     sdkmath.ZeroInt(),
			DelegatedUserStake: sdkmath.ZeroInt(),
		}
	}
	return records
}

func buildPayoutRecords(accrued map[types.AccountID]sdkmath.Int) map[types.AccountID]*PayoutAccountRecord {
	records := make(map[types.AccountID]*PayoutAccountRecord, len(accrued))
	for id, reward := range accrued {
		records[id] = &PayoutAccountRecord{
			Account:            id,
			RewardAccrued:      reward,
			RewardAccruedHuman: FormatBalance(reward),
			StakeTotal:         sdkmath.ZeroInt(),
			StakeRatio:         decimal.Zero,
		}
	}
	return records
}

// mergeComputeRewards drops rewards paid to accounts that are no payout target
// of a known stash.
func mergeComputeRewards(payouts map[types.AccountID]*PayoutAccountRecord, rewards map[types.AccountID]uint32) {
	for id, reward := range rewards {
		if payout, ok := payouts[id]; ok {
			payout.ComputeReward = reward
		}
	}
}

func applyWorkerStates(
	stashes map[types.AccountID]*StashRecord,
	payouts map[types.AccountID]*PayoutAccountRecord,
	workers map[types.AccountID]types.WorkerInfo,
) uint64 {
	var accumulatedScore uint64
	for id, worker := range workers {
		stash, ok := stashes[id]
		if !ok {
			continue
		}

		stash.OverallScore = worker.OverallScore
		if !worker.State.IsMining() {
			continue
		}

		stash.Mining = true
		accumulatedScore += uint64(worker.OverallScore)
		if payout, ok := payouts[stash.PayoutTarget]; ok {
			payout.WorkerCount++
		}
	}
	return accumulatedScore
}

func applyStakeReceived(
	stashes map[types.AccountID]*StashRecord,
	payouts map[types.AccountID]*PayoutAccountRecord,
	received map[types.AccountID]sdkmath.Int,
) sdkmath.Int {
	var (
		total  sdkmath.Int
		seeded bool
	)
	for id, value := range received {
		stash, ok := stashes[id]
		if !ok || value.IsNil() {
			continue
		}

		if seeded {
			total = total.Add(value)
		} else {
			total = value
			seeded = true
		}

		stash.StakeTotal = stash.StakeTotal.Add(value)
		if payout, ok := payouts[stash.PayoutTarget]; ok {
			payout.StakeTotal = payout.StakeTotal.Add(value)
		}
	}

	if !seeded {
		return sdkmath.ZeroInt()
	}
	return total
}

func applyDelegations(stashes map[types.AccountID]*StashRecord, delegations []types.StakeDelegation) {
	for _, d := range delegations {
		stash, ok := stashes[d.To]
		if !ok || d.Amount.IsNil() {
			continue
		}

		stash.DelegatorCount++
		if d.From == d.To {
			stash.WorkerOwnStake = stash.WorkerOwnStake.Add(d.Amount)
		} else {
			stash.DelegatedUserStake = stash.DelegatedUserStake.Add(d.Amount)
		}
	}
}

func deriveStakeRatios(payouts map[types.AccountID]*PayoutAccountRecord, accumulatedStake sdkmath.Int) {
	total := decimal.NewFromBigInt(accumulatedStake.BigInt(), 0)
	for _, payout := range payouts {
		stake := decimal.NewFromBigInt(payout.StakeTotal.BigInt(), 0)
		payout.StakeRatio = divOrZero(stake, total)
		payout.StakeHuman = FormatBalance(payout.StakeTotal)
	}
}

// TaskScore is s + 5·sqrt(s).
func TaskScore(overallScore uint32) float64 {
	s := float64(overallScore)
	return s + 5*math.Sqrt(s)
}

func buildWorkers(online map[types.AccountID]*StashRecord) []Worker {
	workers := make([]Worker, 0, len(online))
	for _, stash := range online {
		workers = append(workers, Worker{
			Stash:            stash.Stash,
			Controller:       stash.Controller,
			Payout:           stash.PayoutTarget,
			AccumulatedStake: ToHuman(stash.StakeTotal),
			WorkerStake:      ToHuman(stash.WorkerOwnStake),
			UserStake:        ToHuman(stash.DelegatedUserStake),
			StakeAccountNum:  stash.DelegatorCount,
			Commission:       stash.Commission,
			TaskScore:        TaskScore(stash.OverallScore),
			MachineScore:     stash.OverallScore,
			OnlineReward:     PlaceholderOnlineReward,
			ComputeReward:    PlaceholderComputeReward,
			Reward:           PlaceholderReward,
			APY:              PlaceholderAPY,
			Penalty:          PlaceholderPenalty,
		})
	}

	slices.SortFunc(workers, func(a, b Worker) int {
		return a.Stash.Compare(b.Stash)
	})
	return workers
}
