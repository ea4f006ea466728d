package db

import (
	"context"
	"errors"

	"github.com/stakepad/stakepad-round-indexer/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Network info is a single document, addressed by a fixed id.
var networkInfoFilter = bson.M{"_id": "singleton"}

func (db *Database) GetNetworkInfo(ctx context.Context) (*model.NetworkInfo, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 0})

	var info model.NetworkInfo
	err := db.collection(model.NetworkInfoCollection).FindOne(ctx, networkInfoFilter, opts).Decode(&info)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, &NotFoundError{
			Key:     "singleton",
			Message: "network info not found",
		}
	}
	if err != nil {
		return nil, err
	}

	return &info, nil
}

func (db *Database) UpsertNetworkInfo(ctx context.Context, info *model.NetworkInfo) error {
	if info == nil {
		return errors.New("network info must not be nil")
	}

	_, err := db.collection(model.NetworkInfoCollection).UpdateOne(
		ctx,
		networkInfoFilter,
		bson.M{"$set": info},
		options.Update().SetUpsert(true),
	)
	return err
}
