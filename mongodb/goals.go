package mongodb

import (
	"context"
	"fmt"

	"github.com/iliketocde/Finance-Tracker/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// InsertGoal stores a new saving goal and returns its generated ID.
func InsertGoal(ctx context.Context, g *models.SavingGoal) (string, error) {
	collection := MongoClient.Database(MongoDatabase).Collection(GoalCollection)
	g.ID = bson.NewObjectID().Hex()
	_, err := collection.InsertOne(ctx, g)
	if err != nil {
		return "", fmt.Errorf("error inserting goal: %v", err)
	}
	return g.ID, nil
}

// ListGoals fetches a user's saving goals, oldest first.
func ListGoals(ctx context.Context, userID string) ([]models.SavingGoal, error) {
	collection := MongoClient.Database(MongoDatabase).Collection(GoalCollection)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching goals: %v", err)
	}
	defer cursor.Close(ctx)

	var goals []models.SavingGoal
	for cursor.Next(ctx) {
		var g models.SavingGoal
		if err := cursor.Decode(&g); err != nil {
			return nil, fmt.Errorf("error decoding goal: %v", err)
		}
		goals = append(goals, g)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return goals, nil
}

// AddFunds atomically increments a goal's current amount. Concurrent add-funds
// calls never lose an update because the increment happens server-side.
func AddFunds(ctx context.Context, userID, goalID string, amount float64) (*models.SavingGoal, error) {
	collection := MongoClient.Database(MongoDatabase).Collection(GoalCollection)

	filter := bson.M{"_id": goalID, "user_id": userID}
	update := bson.M{"$inc": bson.M{"current": amount}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.SavingGoal
	err := collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("error adding funds to goal %s: %v", goalID, err)
	}
	return &updated, nil
}

// DeleteGoalsByUserID removes all of a user's goals during account deletion.
func DeleteGoalsByUserID(ctx context.Context, userID string) error {
	collection := MongoClient.Database(MongoDatabase).Collection(GoalCollection)
	_, err := collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("error deleting goals: %v", err)
	}
	return nil
}
