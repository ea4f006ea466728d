package services

import (
	"context"
	"sync/atomic"

	"github.com/stakepad/stakepad-round-indexer/internal/clients/chainclient"
	"github.com/stakepad/stakepad-round-indexer/internal/clients/supplyclient"
	"github.com/stakepad/stakepad-round-indexer/internal/config"
	"github.com/stakepad/stakepad-round-indexer/internal/db"
	"github.com/stakepad/stakepad-round-indexer/internal/queue"
)

type Service struct {
	cfg          *config.Config
	db           db.DbInterface
	chain        chainclient.ChainInterface
	supply       supplyclient.SupplyInterface
	queueManager *queue.QueueManager

	detector *RoundDetector
	reader   *SnapshotReader

	// set while a frozen round job is queued or running
	frozenPending  atomic.Bool
	runtimeVersion atomic.Uint32
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	chain chainclient.ChainInterface,
	supply supplyclient.SupplyInterface,
	qm *queue.QueueManager,
) *Service {
	return &Service{
		cfg:          cfg,
		db:           db,
		chain:        chain,
		supply:       supply,
		queueManager: qm,
		detector:     NewRoundDetector(chain, &cfg.Round),
		reader:       NewSnapshotReader(chain, cfg.Chain.MaxConcurrentReads),
	}
}

// StartIndexerSync blocks until ctx is cancelled or the header subscription
// ends.
func (s *Service) StartIndexerSync(ctx context.Context) error {
	// Persist chain info and remember the runtime version
	if err := s.SyncNetworkInfo(ctx); err != nil {
		return err
	}
	// Keep event decoding metadata up to date
	s.StartRuntimeVersionPoller(ctx)
	// Follow finalized heads in the main thread
	return s.SubscribeToFinalizedHeads(ctx)
}
