package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stakepad/stakepad-round-indexer/internal/clients/chainclient"
	"github.com/stakepad/stakepad-round-indexer/internal/clients/supplyclient"
	"github.com/stakepad/stakepad-round-indexer/internal/config"
	"github.com/stakepad/stakepad-round-indexer/internal/db"
	dbmodel "github.com/stakepad/stakepad-round-indexer/internal/db/model"
	"github.com/stakepad/stakepad-round-indexer/internal/observability/metrics"
	"github.com/stakepad/stakepad-round-indexer/internal/observability/tracing"
	"github.com/stakepad/stakepad-round-indexer/internal/queue"
	"github.com/stakepad/stakepad-round-indexer/internal/services"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the StakePad round indexer",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up round db model")
	}

	// create new db client
	database, err := db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	defer database.Disconnect(ctx)
	dbClient := db.NewDbWithMetrics(database)

	client, err := chainclient.NewChainClient(&cfg.Chain)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating chain client")
	}
	defer client.Close()
	chainClient := chainclient.NewChainClientWithMetrics(client)

	supplyClient, err := supplyclient.NewClient(&cfg.Supply)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating supply client")
	}

	qm := queue.NewQueueManager(&cfg.Queue)
	qm.Start(ctx)
	defer qm.Shutdown()

	service := services.NewService(cfg, dbClient, chainClient, supplyClient, qm)

	// initialize metrics with the metrics address from config
	metrics.Init(cfg.Metrics.Address())

	if err := service.StartIndexerSync(ctx); err != nil {
		log.Fatal().Err(err).Msg("indexer sync stopped")
	}
	return nil
}
