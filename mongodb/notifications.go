package mongodb

import (
	"context"
	"fmt"

	"github.com/iliketocde/Finance-Tracker/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// InsertNotification stores a milestone notification for the client to pick
// up on its next poll.
func InsertNotification(ctx context.Context, n *models.Notification) error {
	collection := MongoClient.Database(MongoDatabase).Collection(NotificationCollection)
	n.ID = bson.NewObjectID().Hex()
	_, err := collection.InsertOne(ctx, n)
	if err != nil {
		return fmt.Errorf("error inserting notification: %v", err)
	}
	return nil
}

// ListNotifications fetches a user's notifications, newest first.
func ListNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	collection := MongoClient.Database(MongoDatabase).Collection(NotificationCollection)

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching notifications: %v", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	for cursor.Next(ctx) {
		var n models.Notification
		if err := cursor.Decode(&n); err != nil {
			return nil, fmt.Errorf("error decoding notification: %v", err)
		}
		notifications = append(notifications, n)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %v", err)
	}

	return notifications, nil
}

// MarkNotificationsRead flags all of a user's notifications as read.
func MarkNotificationsRead(ctx context.Context, userID string) error {
	collection := MongoClient.Database(MongoDatabase).Collection(NotificationCollection)
	_, err := collection.UpdateMany(ctx, bson.M{"user_id": userID}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return fmt.Errorf("error marking notifications read: %v", err)
	}
	return nil
}

// DeleteNotificationsByUserID removes a user's notifications during account
// deletion.
func DeleteNotificationsByUserID(ctx context.Context, userID string) error {
	collection := MongoClient.Database(MongoDatabase).Collection(NotificationCollection)
	_, err := collection.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("error deleting notifications: %v", err)
	}
	return nil
}
