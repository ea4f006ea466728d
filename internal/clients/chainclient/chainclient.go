package chainclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/avast/retry-go/v4"
	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	"github.com/centrifuge/go-substrate-rpc-client/v4/registry/parser"
	"github.com/centrifuge/go-substrate-rpc-client/v4/registry/retriever"
	regstate "github.com/centrifuge/go-substrate-rpc-client/v4/registry/state"
	gstypes "github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/rs/zerolog/log"
	"github.com/stakepad/stakepad-round-indexer/internal/config"
	"github.com/stakepad/stakepad-round-indexer/internal/types"
	"golang.org/x/time/rate"
)

// ErrMalformedStorage is returned by GetStorage when a value can't be decoded
// into the requested type.
var ErrMalformedStorage = errors.New("malformed storage value")

type ChainClient struct {
	api     *gsrpc.SubstrateAPI
	cfg     *config.ChainConfig
	limiter *rate.Limiter

	mu             sync.RWMutex
	eventRetriever retriever.EventRetriever
}

func NewChainClient(cfg *config.ChainConfig) (*ChainClient, error) {
	api, err := gsrpc.NewSubstrateAPI(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Endpoint, err)
	}

	burst := max(1, int(cfg.RequestsPerSecond))
	c := &ChainClient{
		api:     api,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
	}

	if err := c.RefreshMetadata(context.Background()); err != nil {
		api.Client.Close()
		return nil, err
	}

	return c, nil
}

func (c *ChainClient) Close() {
	c.api.Client.Close()
}

func (c *ChainClient) GetChainInfo(ctx context.Context) (*types.ChainInfo, error) {
	chain, err := clientCallWithRetry(ctx, c, func() (gstypes.Text, error) {
		return c.api.RPC.System.Chain()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get chain name: %w", err)
	}
	name, err := clientCallWithRetry(ctx, c, func() (gstypes.Text, error) {
		return c.api.RPC.System.Name()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get node name: %w", err)
	}
	version, err := clientCallWithRetry(ctx, c, func() (gstypes.Text, error) {
		return c.api.RPC.System.Version()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get node version: %w", err)
	}

	return &types.ChainInfo{
		Chain:       string(chain),
		NodeName:    string(name),
		NodeVersion: string(version),
	}, nil
}

func (c *ChainClient) GetBlockHash(ctx context.Context, height uint64) (types.BlockHash, error) {
	hash, err := clientCallWithRetry(ctx, c, func() (gstypes.Hash, error) {
		return c.api.RPC.Chain.GetBlockHash(height)
	})
	if err != nil {
		return types.BlockHash{}, fmt.Errorf("failed to get block hash at %d: %w", height, err)
	}
	return types.BlockHash(hash), nil
}

func (c *ChainClient) GetHeaderAt(ctx context.Context, height uint64) (types.Header, error) {
	hash, err := c.GetBlockHash(ctx, height)
	if err != nil {
		return types.Header{}, err
	}
	return types.Header{Height: height, Hash: hash}, nil
}

func (c *ChainClient) GetEvents(ctx context.Context, hash types.BlockHash) ([]types.ChainEvent, error) {
	c.mu.RLock()
	r := c.eventRetriever
	c.mu.RUnlock()

	events, err := clientCallWithRetry(ctx, c, func() ([]*parser.Event, error) {
		return r.GetEvents(gstypes.Hash(hash))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get events at %s: %w", hash.Hex(), err)
	}

	result := make([]types.ChainEvent, 0, len(events))
	for _, event := range events {
		values := make([]any, 0, len(event.Fields))
		for _, field := range event.Fields {
			values = append(values, field.Value)
		}
		result = append(result, newChainEvent(event.Name, values))
	}

	return result, nil
}

func newChainEvent(name string, fields []any) types.ChainEvent {
	pallet, event, found := strings.Cut(name, ".")
	if !found {
		return types.ChainEvent{Name: name, Fields: fields}
	}
	return types.ChainEvent{Pallet: pallet, Name: event, Fields: fields}
}

func (c *ChainClient) GetRoundInfo(ctx context.Context, hash types.BlockHash) (*types.RoundInfo, error) {
	var info roundInfo
	ok, err := c.GetStorage(ctx, Round.Prefix(), &info, hash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s is empty at %s", Round, hash.Hex())
	}

	return &types.RoundInfo{
		Round:      info.Round,
		StartBlock: uint64(info.StartBlock),
	}, nil
}

func (c *ChainClient) GetKeys(ctx context.Context, item StorageItem, hash types.BlockHash) ([]types.StorageKey, error) {
	keys, err := clientCallWithRetry(ctx, c, func() ([]gstypes.StorageKey, error) {
		return c.api.RPC.State.GetKeys(gstypes.StorageKey(item.Prefix()), gstypes.Hash(hash))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s keys at %s: %w", item, hash.Hex(), err)
	}

	result := make([]types.StorageKey, len(keys))
	for i, key := range keys {
		result[i] = types.StorageKey(key)
	}
	return result, nil
}

func (c *ChainClient) GetStorage(
	ctx context.Context, key types.StorageKey, target any, hash types.BlockHash,
) (bool, error) {
	// decode outside the retried call, an abandoned attempt must not write into target
	raw, err := clientCallWithRetry(ctx, c, func() (*gstypes.StorageDataRaw, error) {
		return c.api.RPC.State.GetStorageRaw(gstypes.StorageKey(key), gstypes.Hash(hash))
	})
	if err != nil {
		return false, fmt.Errorf("failed to get storage %s at %s: %w", key.Hex(), hash.Hex(), err)
	}
	if raw == nil || len(*raw) == 0 {
		return false, nil
	}

	if err := codec.Decode(*raw, target); err != nil {
		return false, fmt.Errorf("%w %s at %s: %w", ErrMalformedStorage, key.Hex(), hash.Hex(), err)
	}
	return true, nil
}

func (c *ChainClient) GetRuntimeVersion(ctx context.Context) (uint32, error) {
	version, err := clientCallWithRetry(ctx, c, func() (*gstypes.RuntimeVersion, error) {
		return c.api.RPC.State.GetRuntimeVersionLatest()
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get runtime version: %w", err)
	}
	return uint32(version.SpecVersion), nil
}

// RefreshMetadata rebuilds the event retriever so that events are decoded with
// the latest runtime metadata.
func (c *ChainClient) RefreshMetadata(ctx context.Context) error {
	r, err := clientCallWithRetry(ctx, c, func() (retriever.EventRetriever, error) {
		return retriever.NewDefaultEventRetriever(regstate.NewEventProvider(c.api.RPC.State), c.api.RPC.State)
	})
	if err != nil {
		return fmt.Errorf("failed to create event retriever: %w", err)
	}

	c.mu.Lock()
	c.eventRetriever = r
	c.mu.Unlock()

	return nil
}

// ReadBalance reads a u128 value. Absent keys read as zero with ok == false.
func ReadBalance(
	ctx context.Context, chain ChainInterface, key types.StorageKey, hash types.BlockHash,
) (sdkmath.Int, bool, error) {
	var v Balance
	ok, err := chain.GetStorage(ctx, key, &v, hash)
	if err != nil || !ok {
		return sdkmath.ZeroInt(), ok, err
	}
	return v.Int(), true, nil
}

func clientCallWithRetry[T any](ctx context.Context, c *ChainClient, call func() (T, error)) (T, error) {
	return retry.DoWithData(
		func() (T, error) {
			if err := c.limiter.Wait(ctx); err != nil {
				var zero T
				return zero, retry.Unrecoverable(err)
			}
			return callWithTimeout(ctx, c.cfg.Timeout, call)
		},
		retry.Context(ctx),
		retry.Attempts(c.cfg.MaxRetryTimes),
		retry.Delay(c.cfg.RetryInterval),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", c.cfg.MaxRetryTimes).
				Err(err).
				Msg("failed to call the chain RPC")
		}),
	)
}

// callWithTimeout stops waiting for call after timeout. The call itself can't
// be interrupted and is left to finish in the background.
func callWithTimeout[T any](ctx context.Context, timeout time.Duration, call func() (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := call()
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
