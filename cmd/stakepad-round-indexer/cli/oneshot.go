package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/stakepad/stakepad-round-indexer/internal/clients/chainclient"
	"github.com/stakepad/stakepad-round-indexer/internal/clients/supplyclient"
	"github.com/stakepad/stakepad-round-indexer/internal/config"
	"github.com/stakepad/stakepad-round-indexer/internal/db"
	"github.com/stakepad/stakepad-round-indexer/internal/services"
)

// oneShot holds the clients of a command that handles a single height and
// exits. It has no queue, rounds are processed inline.
type oneShot struct {
	cfg     *config.Config
	chain   chainclient.ChainInterface
	service *services.Service
	close   func()
}

func newOneShot(ctx context.Context) (*oneShot, error) {
	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return nil, err
	}

	database, err := db.New(ctx, cfg.Db)
	if err != nil {
		return nil, fmt.Errorf("error while creating db client: %w", err)
	}

	client, err := chainclient.NewChainClient(&cfg.Chain)
	if err != nil {
		_ = database.Disconnect(ctx)
		return nil, fmt.Errorf("error while creating chain client: %w", err)
	}

	supplyClient, err := supplyclient.NewClient(&cfg.Supply)
	if err != nil {
		client.Close()
		_ = database.Disconnect(ctx)
		return nil, fmt.Errorf("error while creating supply client: %w", err)
	}

	return &oneShot{
		cfg:     cfg,
		chain:   client,
		service: services.NewService(cfg, database, client, supplyClient, nil),
		close: func() {
			client.Close()
			_ = database.Disconnect(context.WithoutCancel(ctx))
		},
	}, nil
}

// triggerAt pins the round running at height to that block.
func (o *oneShot) triggerAt(ctx context.Context, height uint64) (services.RoundTrigger, error) {
	header, err := o.chain.GetHeaderAt(ctx, height)
	if err != nil {
		return services.RoundTrigger{}, err
	}

	info, err := o.chain.GetRoundInfo(ctx, header.Hash)
	if err != nil {
		return services.RoundTrigger{}, fmt.Errorf("failed to read round info at height %d: %w", height, err)
	}

	return services.RoundTrigger{
		Kind:   services.TriggerManual,
		Round:  info.Round,
		Header: header,
	}, nil
}

func parseHeight(arg string) (uint64, error) {
	height, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid block height %q: %w", arg, err)
	}
	return height, nil
}
