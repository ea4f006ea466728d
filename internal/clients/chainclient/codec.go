package chainclient

import (
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	gstypes "github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/stakepad/stakepad-round-indexer/internal/types"
)

// Balance is a u128 storage value.
type Balance struct {
	value gstypes.U128
}

func NewBalance(v sdkmath.Int) Balance {
	return Balance{value: gstypes.NewU128(*v.BigInt())}
}

func (b *Balance) Decode(d scale.Decoder) error {
	return d.Decode(&b.value)
}

func (b Balance) Int() sdkmath.Int {
	if b.value.Int == nil {
		return sdkmath.ZeroInt()
	}
	return sdkmath.NewIntFromBigInt(new(big.Int).Set(b.value.Int))
}

// StashInfo mirrors the on-chain StashInfo{controller, payout_prefs{commission, target}}.
// The nested struct flattens to the same field order.
type StashInfo struct {
	Controller   [32]byte
	Commission   uint32
	PayoutTarget [32]byte
}

func (s StashInfo) Info() types.StashInfo {
	return types.StashInfo{
		Controller:   types.AccountID(s.Controller),
		PayoutTarget: types.AccountID(s.PayoutTarget),
		Commission:   s.Commission,
	}
}

type WorkerScore struct {
	OverallScore uint32
	Features     []uint32
}

type WorkerInfo struct {
	MachineID   []byte
	Pubkey      []byte
	LastUpdated uint64
	State       types.MiningState
	// MiningSince is only set for the Mining variant.
	MiningSince     uint32
	Score           *WorkerScore
	ConfidenceLevel uint8
	RuntimeVersion  uint32
}

func (w *WorkerInfo) Decode(d scale.Decoder) error {
	if err := d.Decode(&w.MachineID); err != nil {
		return fmt.Errorf("machine id: %w", err)
	}
	if err := d.Decode(&w.Pubkey); err != nil {
		return fmt.Errorf("pubkey: %w", err)
	}
	if err := d.Decode(&w.LastUpdated); err != nil {
		return fmt.Errorf("last updated: %w", err)
	}

	variant, err := d.ReadOneByte()
	if err != nil {
		return fmt.Errorf("state: %w", err)
	}
	w.State, err = types.MiningStateFromIndex(variant)
	if err != nil {
		return err
	}
	if w.State == types.StateMining {
		if err := d.Decode(&w.MiningSince); err != nil {
			return fmt.Errorf("mining since: %w", err)
		}
	}

	hasScore, err := d.ReadOneByte()
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}
	switch hasScore {
	case 0:
		w.Score = nil
	case 1:
		w.Score = &WorkerScore{}
		if err := d.Decode(w.Score); err != nil {
			return fmt.Errorf("score: %w", err)
		}
	default:
		return fmt.Errorf("score: invalid option tag %d", hasScore)
	}

	if err := d.Decode(&w.ConfidenceLevel); err != nil {
		return fmt.Errorf("confidence level: %w", err)
	}
	if err := d.Decode(&w.RuntimeVersion); err != nil {
		return fmt.Errorf("runtime version: %w", err)
	}

	return nil
}

func (w WorkerInfo) Info() types.WorkerInfo {
	info := types.WorkerInfo{State: w.State}
	if w.Score != nil {
		info.OverallScore = w.Score.OverallScore
	}
	return info
}

type roundInfo struct {
	Round      uint32
	StartBlock uint32
}
