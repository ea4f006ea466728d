package chainclient

import (
	"context"

	"github.com/stakepad/stakepad-round-indexer/internal/types"
)

// ChainInterface is the read side of a Substrate node. Every storage and event
// read is pinned to an explicit block hash.
//go:generate mockery --name=ChainInterface --output=../../../tests/mocks --outpkg=mocks --filename=mock_chain_client.go
type ChainInterface interface {
	GetChainInfo(ctx context.Context) (*types.ChainInfo, error)
	// SubscribeFinalizedHeads delivers finalized headers in strictly increasing
	// height order, without gaps. The channel is closed when ctx is done or the
	// node subscription fails.
	SubscribeFinalizedHeads(ctx context.Context) (<-chan types.Header, error)
	GetBlockHash(ctx context.Context, height uint64) (types.BlockHash, error)
	GetHeaderAt(ctx context.Context, height uint64) (types.Header, error)
	GetEvents(ctx context.Context, hash types.BlockHash) ([]types.ChainEvent, error)
	GetRoundInfo(ctx context.Context, hash types.BlockHash) (*types.RoundInfo, error)
	GetKeys(ctx context.Context, item StorageItem, hash types.BlockHash) ([]types.StorageKey, error)
	// GetStorage decodes the value under key into target. It returns false
	// when the key holds no value at hash.
	GetStorage(ctx context.Context, key types.StorageKey, target any, hash types.BlockHash) (bool, error)
	GetRuntimeVersion(ctx context.Context) (uint32, error)
	RefreshMetadata(ctx context.Context) error
}
