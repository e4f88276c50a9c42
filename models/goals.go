package models

import "time"

// SavingGoal tracks progress toward a savings target. Current is only ever
// changed through atomic add-funds increments.
type SavingGoal struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Title     string    `json:"title" bson:"title"`
	Target    float64   `json:"target" bson:"target"`
	Current   float64   `json:"current" bson:"current"`
	Color     string    `json:"color" bson:"color"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
