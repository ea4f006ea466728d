package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/stakepad/stakepad-round-indexer/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const currentRoundID = "current"

type currentRoundDoc struct {
	ID                           string `bson:"_id"`
	*model.RoundSnapshotDocument `bson:",inline"`
}

type historyRoundDoc struct {
	ID                           any `bson:"_id,omitempty"`
	*model.RoundSnapshotDocument `bson:",inline"`
}

func (db *Database) GetCurrentRound(ctx context.Context) (*model.RoundSnapshotDocument, error) {
	filter := bson.M{"_id": currentRoundID}
	res := db.collection(model.CurrentRoundCollection).FindOne(ctx, filter)

	var doc currentRoundDoc
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     currentRoundID,
				Message: "current round not found",
			}
		}
		return nil, err
	}

	return doc.RoundSnapshotDocument, nil
}

// UpsertCurrentRound overwrites the current round in place, creating it on
// first use.
func (db *Database) UpsertCurrentRound(ctx context.Context, round *model.RoundSnapshotDocument) error {
	if round == nil {
		return errors.New("round document is nil")
	}

	doc := currentRoundDoc{
		ID:                    currentRoundID,
		RoundSnapshotDocument: round,
	}

	filter := bson.M{"_id": currentRoundID}
	update := bson.M{"$set": doc}

	_, err := db.collection(model.CurrentRoundCollection).
		UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (db *Database) GetHistoricalRound(ctx context.Context, round uint32) (*model.RoundSnapshotDocument, error) {
	filter := bson.M{"round": round}
	res := db.collection(model.HistoryRoundCollection).FindOne(ctx, filter)

	var doc historyRoundDoc
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     fmt.Sprint(round),
				Message: fmt.Sprintf("round %d not found in history", round),
			}
		}
		return nil, err
	}

	return doc.RoundSnapshotDocument, nil
}

func (db *Database) SaveHistoricalRound(ctx context.Context, round *model.RoundSnapshotDocument) error {
	if round == nil {
		return errors.New("round document is nil")
	}

	_, err := db.collection(model.HistoryRoundCollection).
		InsertOne(ctx, historyRoundDoc{RoundSnapshotDocument: round})
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     fmt.Sprint(round.Round),
						Message: fmt.Sprintf("round %d already archived", round.Round),
					}
				}
			}
		}
		return err
	}
	return nil
}
