package services

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"sync"

	sdkmath "cosmossdk.io/math"
	"github.com/stakepad/stakepad-round-indexer/internal/clients/chainclient"
	"github.com/stakepad/stakepad-round-indexer/internal/types"
	"github.com/stakepad/stakepad-round-indexer/testutil"
)

var errConnectionReset = errors.New("connection reset by peer")

// fakeChain serves storage from memory. Only the storage methods are
// implemented, anything else panics through the nil embedded interface.
type fakeChain struct {
	chainclient.ChainInterface

	mu     sync.Mutex
	keys   map[chainclient.StorageItem][]types.StorageKey
	values map[string]any
	hashes map[types.BlockHash]int
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		keys:   make(map[chainclient.StorageItem][]types.StorageKey),
		values: make(map[string]any),
		hashes: make(map[types.BlockHash]int),
	}
}

func (f *fakeChain) putScalar(item chainclient.StorageItem, value any) {
	f.values[item.Prefix().Hex()] = value
}

// putMap stores value under a Twox64Concat key of id. A nil value leaves the
// key enumerable but empty.
func (f *fakeChain) putMap(item chainclient.StorageItem, id types.AccountID, value any) types.StorageKey {
	key := item.Prefix()
	key = append(key, bytes.Repeat([]byte{0xab}, 8)...)
	key = append(key, id[:]...)
	f.putKey(item, key, value)
	return key
}

// putDoubleMap stores value under a Blake2_128Concat double map key.
func (f *fakeChain) putDoubleMap(item chainclient.StorageItem, from, to types.AccountID, value any) {
	key := item.Prefix()
	key = append(key, bytes.Repeat([]byte{0xcd}, 16)...)
	key = append(key, from[:]...)
	key = append(key, bytes.Repeat([]byte{0xef}, 16)...)
	key = append(key, to[:]...)
	f.putKey(item, key, value)
}

func (f *fakeChain) putKey(item chainclient.StorageItem, key types.StorageKey, value any) {
	f.keys[item] = append(f.keys[item], key)
	if value != nil {
		f.values[key.Hex()] = value
	}
}

func (f *fakeChain) putBalance(item chainclient.StorageItem, id types.AccountID, v sdkmath.Int) {
	f.putMap(item, id, chainclient.NewBalance(v))
}

func (f *fakeChain) seenHashes() []types.BlockHash {
	f.mu.Lock()
	defer f.mu.Unlock()

	hashes := make([]types.BlockHash, 0, len(f.hashes))
	for h := range f.hashes {
		hashes = append(hashes, h)
	}
	return hashes
}

func (f *fakeChain) GetKeys(_ context.Context, item chainclient.StorageItem, hash types.BlockHash) ([]types.StorageKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.hashes[hash]++
	return f.keys[item], nil
}

// GetStorage copies the stored value into target. A stored error is returned
// as is.
func (f *fakeChain) GetStorage(_ context.Context, key types.StorageKey, target any, hash types.BlockHash) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.hashes[hash]++
	v, ok := f.values[key.Hex()]
	if !ok {
		return false, nil
	}
	if err, isErr := v.(error); isErr {
		return false, err
	}

	reflect.ValueOf(target).Elem().Set(reflect.ValueOf(v))
	return true, nil
}

// roundScenario is a chain state with one mining stash A and one idle stash B
// sharing payout account P, plus an orphan payout account Q.
type roundScenario struct {
	chain *fakeChain

	stashA, stashB, payout, orphan, delegator types.AccountID
}

func newRoundScenario() *roundScenario {
	s := &roundScenario{
		chain:     newFakeChain(),
		stashA:    accountOf(1),
		stashB:    accountOf(2),
		payout:    accountOf(3),
		orphan:    accountOf(4),
		delegator: accountOf(5),
	}
	c := s.chain

	c.putScalar(chainclient.AccumulatedFire2, chainclient.NewBalance(testutil.Pha(1000)))
	c.putScalar(chainclient.OnlineWorkers, uint32(1))
	c.putScalar(chainclient.TotalPower, uint32(150))

	for _, stash := range []types.AccountID{s.stashA, s.stashB} {
		c.putMap(chainclient.StashState, stash, chainclient.StashInfo{
			Controller:   stash,
			Commission:   100_000,
			PayoutTarget: s.payout,
		})
	}

	c.putBalance(chainclient.Fire2, s.payout, testutil.Pha(12))
	c.putBalance(chainclient.Fire2, s.orphan, testutil.Pha(3))
	c.putMap(chainclient.PayoutComputeReward, s.payout, uint32(7))

	c.putMap(chainclient.WorkerState, s.stashA, chainclient.WorkerInfo{
		State: types.StateMining,
		Score: &chainclient.WorkerScore{OverallScore: 100},
	})
	c.putMap(chainclient.WorkerState, s.stashB, chainclient.WorkerInfo{
		State: types.StateFree,
		Score: &chainclient.WorkerScore{OverallScore: 80},
	})

	c.putBalance(chainclient.StakeReceived, s.stashA, testutil.Pha(5))
	c.putBalance(chainclient.StakeReceived, s.stashB, testutil.Pha(5))

	c.putDoubleMap(chainclient.Staked, s.stashA, s.stashA, chainclient.NewBalance(testutil.Pha(2)))
	c.putDoubleMap(chainclient.Staked, s.delegator, s.stashA, chainclient.NewBalance(testutil.Pha(3)))

	return s
}

func accountOf(b byte) types.AccountID {
	var id types.AccountID
	for i := range id {
		id[i] = b
	}
	return id
}
