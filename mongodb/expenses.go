package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/iliketocde/Finance-Tracker/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// InsertExpense stores a new expense and returns its generated ID. Expenses
// are immutable once created.
func InsertExpense(ctx context.Context, e *models.Expense) (string, error) {
	collection := MongoClient.Database(MongoDatabase).Collection(ExpenseCollection)
	e.ID = bson.NewObjectID().Hex()
	_, err := collection.InsertOne(ctx, e)
	if err != nil {
		return "", fmt.Errorf("error inserting expense: %v", err)
	}
	return e.ID, nil
}

// ListExpenses fetches a user's expenses newest-first. A zero cutoff means no
// window filtering ("all time").
func ListExpenses(ctx context.Context, userID string, cutoff time.Time) ([]models.Expense, error) {
	collection := MongoClient.Database(MongoDatabase).Collection(ExpenseCollection)

	filter := bson.M{"user_id": userID}
	if !cutoff.IsZero() {
		filter["timestamp"] = bson.M{"$gte": cutoff}
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching expenses: %v", err)
	}
	defer cursor.Close(ctx)

	var expenses []models.Expense
	for cursor.Next(ctx) {
		var e models.Expense
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("error decoding expense: %v", err)
		}
		expenses = append(expenses, e)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return expenses, nil
}

// DeleteExpensesByUserID removes all of a user's expenses during account
// deletion.
func DeleteExpensesByUserID(ctx context.Context, userID string) error {
	collection := MongoClient.Database(MongoDatabase).Collection(ExpenseCollection)
	_, err := collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("error deleting expenses: %v", err)
	}
	return nil
}
