package chainclient

import (
	"context"
	"time"

	"github.com/stakepad/stakepad-round-indexer/internal/observability/metrics"
	"github.com/stakepad/stakepad-round-indexer/internal/types"
)

type chainClientWithMetrics struct {
	chain ChainInterface
}

func NewChainClientWithMetrics(chain ChainInterface) *chainClientWithMetrics {
	return &chainClientWithMetrics{chain: chain}
}

func (c *chainClientWithMetrics) GetChainInfo(ctx context.Context) (*types.ChainInfo, error) {
	return runChainClientMethodWithMetrics("GetChainInfo", func() (*types.ChainInfo, error) {
		return c.chain.GetChainInfo(ctx)
	})
}

func (c *chainClientWithMetrics) SubscribeFinalizedHeads(ctx context.Context) (<-chan types.Header, error) {
	return runChainClientMethodWithMetrics("SubscribeFinalizedHeads", func() (<-chan types.Header, error) {
		return c.chain.SubscribeFinalizedHeads(ctx)
	})
}

func (c *chainClientWithMetrics) GetBlockHash(ctx context.Context, height uint64) (types.BlockHash, error) {
	return runChainClientMethodWithMetrics("GetBlockHash", func() (types.BlockHash, error) {
		return c.chain.GetBlockHash(ctx, height)
	})
}

func (c *chainClientWithMetrics) GetHeaderAt(ctx context.Context, height uint64) (types.Header, error) {
	return runChainClientMethodWithMetrics("GetHeaderAt", func() (types.Header, error) {
		return c.chain.GetHeaderAt(ctx, height)
	})
}

func (c *chainClientWithMetrics) GetEvents(ctx context.Context, hash types.BlockHash) ([]types.ChainEvent, error) {
	return runChainClientMethodWithMetrics("GetEvents", func() ([]types.ChainEvent, error) {
		return c.chain.GetEvents(ctx, hash)
	})
}

func (c *chainClientWithMetrics) GetRoundInfo(ctx context.Context, hash types.BlockHash) (*types.RoundInfo, error) {
	return runChainClientMethodWithMetrics("GetRoundInfo", func() (*types.RoundInfo, error) {
		return c.chain.GetRoundInfo(ctx, hash)
	})
}

func (c *chainClientWithMetrics) GetKeys(ctx context.Context, item StorageItem, hash types.BlockHash) ([]types.StorageKey, error) {
	return runChainClientMethodWithMetrics("GetKeys", func() ([]types.StorageKey, error) {
		return c.chain.GetKeys(ctx, item, hash)
	})
}

func (c *chainClientWithMetrics) GetStorage(ctx context.Context, key types.StorageKey, target any, hash types.BlockHash) (bool, error) {
	return runChainClientMethodWithMetrics("GetStorage", func() (bool, error) {
		return c.chain.GetStorage(ctx, key, target, hash)
	})
}

func (c *chainClientWithMetrics) GetRuntimeVersion(ctx context.Context) (uint32, error) {
	return runChainClientMethodWithMetrics("GetRuntimeVersion", func() (uint32, error) {
		return c.chain.GetRuntimeVersion(ctx)
	})
}

func (c *chainClientWithMetrics) RefreshMetadata(ctx context.Context) error {
	// this is just auxiliary type in order to call runChainClientMethodWithMetrics which always returns 2 values
	type zero struct{}
	_, err := runChainClientMethodWithMetrics[zero]("RefreshMetadata", func() (zero, error) {
		return zero{}, c.chain.RefreshMetadata(ctx)
	})

	return err
}

func runChainClientMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordChainClientLatency(duration, method, err != nil)
	return v, err
}
