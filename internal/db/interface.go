package db

import (
	"context"

	"github.com/stakepad/stakepad-round-indexer/internal/db/model"
)

//go:generate mockery --name=DbInterface --output=../../tests/mocks --outpkg=mocks --filename=mock_db_client.go
type DbInterface interface {
	Ping(ctx context.Context) error
	// GetCurrentRound returns NotFoundError when no round was processed yet.
	GetCurrentRound(ctx context.Context) (*model.RoundSnapshotDocument, error)
	UpsertCurrentRound(ctx context.Context, doc *model.RoundSnapshotDocument) error
	// GetHistoricalRound returns NotFoundError for rounds never archived.
	GetHistoricalRound(ctx context.Context, round uint32) (*model.RoundSnapshotDocument, error)
	// SaveHistoricalRound returns DuplicateKeyError if the round is already
	// archived, history is never overwritten.
	SaveHistoricalRound(ctx context.Context, doc *model.RoundSnapshotDocument) error
	GetNetworkInfo(ctx context.Context) (*model.NetworkInfo, error)
	UpsertNetworkInfo(ctx context.Context, networkInfo *model.NetworkInfo) error
}
