package db

import (
	"context"
	"time"

	"github.com/stakepad/stakepad-round-indexer/internal/db/model"
	"github.com/stakepad/stakepad-round-indexer/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) GetCurrentRound(ctx context.Context) (result *model.RoundSnapshotDocument, err error) {
	//nolint:errcheck
	d.run("GetCurrentRound", func() error {
		result, err = d.db.GetCurrentRound(ctx)
		return err
	})

	return
}

func (d *DbWithMetrics) UpsertCurrentRound(ctx context.Context, doc *model.RoundSnapshotDocument) error {
	return d.run("UpsertCurrentRound", func() error {
		return d.db.UpsertCurrentRound(ctx, doc)
	})
}

func (d *DbWithMetrics) GetHistoricalRound(ctx context.Context, round uint32) (result *model.RoundSnapshotDocument, err error) {
	//nolint:errcheck
	d.run("GetHistoricalRound", func() error {
		result, err = d.db.GetHistoricalRound(ctx, round)
		return err
	})

	return
}

func (d *DbWithMetrics) SaveHistoricalRound(ctx context.Context, doc *model.RoundSnapshotDocument) error {
	return d.run("SaveHistoricalRound", func() error {
		return d.db.SaveHistoricalRound(ctx, doc)
	})
}

func (d *DbWithMetrics) GetNetworkInfo(ctx context.Context) (result *model.NetworkInfo, err error) {
	//nolint:errcheck
	d.run("GetNetworkInfo", func() error {
		result, err = d.db.GetNetworkInfo(ctx)
		return err
	})

	return
}

func (d *DbWithMetrics) UpsertNetworkInfo(ctx context.Context, networkInfo *model.NetworkInfo) error {
	return d.run("UpsertNetworkInfo", func() error {
		return d.db.UpsertNetworkInfo(ctx, networkInfo)
	})
}

// run is a private method that executes passed lambda function and send metrics data with
// execution time and status. It returns the same error that lambda function returned
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	// not found is an expected outcome, don't count it as a failure
	failure := err != nil && !IsNotFoundError(err)
	metrics.RecordDbLatency(duration, method, failure)
	return err
}
