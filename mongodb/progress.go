package mongodb

import (
	"context"
	"fmt"

	"github.com/iliketocde/Finance-Tracker/challenges"
	"github.com/iliketocde/Finance-Tracker/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// MarkCompleted appends a completion entry for the given challenge-instance
// key. Entries are append-only: if the key is already complete, the call
// reports false and writes nothing, so a completion can never be doubled.
func MarkCompleted(ctx context.Context, entry *models.ProgressEntry) (bool, error) {
	collection := MongoClient.Database(MongoDatabase).Collection(ProgressCollection)

	filter := bson.M{"user_id": entry.UserID, "key": entry.Key}
	update := bson.M{"$setOnInsert": entry}
	opts := options.UpdateOne().SetUpsert(true)

	result, err := collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return false, fmt.Errorf("error recording completion for key %s: %v", entry.Key, err)
	}
	return result.UpsertedCount > 0, nil
}

// GetProgress loads a user's full completion map. An empty or missing set of
// entries degrades to an empty map and a day-one streak, never an error the
// caller has to special-case.
func GetProgress(ctx context.Context, userID string) (challenges.ProgressMap, error) {
	collection := MongoClient.Database(MongoDatabase).Collection(ProgressCollection)

	cursor, err := collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return challenges.ProgressMap{}, nil
		}
		return nil, fmt.Errorf("error fetching progress: %v", err)
	}
	defer cursor.Close(ctx)

	progress := challenges.ProgressMap{}
	for cursor.Next(ctx) {
		var entry models.ProgressEntry
		if err := cursor.Decode(&entry); err != nil {
			return nil, fmt.Errorf("error decoding progress entry: %v", err)
		}
		progress[entry.Key] = entry
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return progress, nil
}

// DeleteProgressByUserID removes a user's completion entries during account
// deletion.
func DeleteProgressByUserID(ctx context.Context, userID string) error {
	collection := MongoClient.Database(MongoDatabase).Collection(ProgressCollection)
	_, err := collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("error deleting progress: %v", err)
	}
	return nil
}
