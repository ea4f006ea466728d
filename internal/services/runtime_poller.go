package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/stakepad/stakepad-round-indexer/internal/utils/poller"
)

func (s *Service) StartRuntimeVersionPoller(ctx context.Context) {
	versionPoller := poller.NewPoller(
		"runtime_version",
		s.cfg.Poller.RuntimeVersionPollingInterval,
		s.checkRuntimeVersion,
	)
	go versionPoller.Start(ctx)
}

// checkRuntimeVersion reloads the metadata used for event decoding once the
// runtime has been upgraded.
func (s *Service) checkRuntimeVersion(ctx context.Context) error {
	version, err := s.chain.GetRuntimeVersion(ctx)
	if err != nil {
		return err
	}

	previous := s.runtimeVersion.Load()
	if version == previous {
		return nil
	}

	if err := s.chain.RefreshMetadata(ctx); err != nil {
		return fmt.Errorf("failed to refresh metadata for runtime %d: %w", version, err)
	}
	s.runtimeVersion.Store(version)

	info, err := s.db.GetNetworkInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch network info: %w", err)
	}
	info.RuntimeVersion = version
	if err := s.db.UpsertNetworkInfo(ctx, info); err != nil {
		return fmt.Errorf("failed to save network info: %w", err)
	}

	log.Ctx(ctx).Info().
		Uint32("previous", previous).
		Uint32("current", version).
		Msg("Runtime upgraded, metadata refreshed")

	return nil
}
