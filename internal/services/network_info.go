package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/stakepad/stakepad-round-indexer/internal/db"
	"github.com/stakepad/stakepad-round-indexer/internal/db/model"
)

// SyncNetworkInfo stores the connected chain's identity. It refuses to run
// against a different chain than the one already indexed.
func (s *Service) SyncNetworkInfo(ctx context.Context) error {
	info, err := s.chain.GetChainInfo(ctx)
	if err != nil {
		return err
	}
	version, err := s.chain.GetRuntimeVersion(ctx)
	if err != nil {
		return err
	}

	stored, err := s.db.GetNetworkInfo(ctx)
	if err != nil && !db.IsNotFoundError(err) {
		return fmt.Errorf("failed to fetch network info: %w", err)
	}
	if stored != nil && stored.Chain != info.Chain {
		return fmt.Errorf("chain %q from node is different from chain %q stored in db", info.Chain, stored.Chain)
	}

	doc := &model.NetworkInfo{
		Chain:          info.Chain,
		NodeName:       info.NodeName,
		NodeVersion:    info.NodeVersion,
		RuntimeVersion: version,
	}
	if err := s.db.UpsertNetworkInfo(ctx, doc); err != nil {
		return fmt.Errorf("failed to save network info: %w", err)
	}
	s.runtimeVersion.Store(version)

	log.Ctx(ctx).Info().
		Str("chain", info.Chain).
		Str("node_name", info.NodeName).
		Str("node_version", info.NodeVersion).
		Uint32("runtime_version", version).
		Msg("Connected to chain")

	return nil
}
