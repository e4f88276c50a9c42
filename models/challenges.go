package models

import "time"

type ChallengeType string

const (
	ChallengeDaily  ChallengeType = "daily"
	ChallengeWeekly ChallengeType = "weekly"
)

// Challenge is a catalog entry, not a stored record. The catalog is fixed in
// code; only completion entries are persisted.
type Challenge struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Reward      string        `json:"reward"`
	Points      int           `json:"points"`
	Type        ChallengeType `json:"type"`
}

// ProgressEntry records one completed challenge instance. Entries are
// append-only: once a key is complete it is never un-marked.
type ProgressEntry struct {
	UserID      string    `json:"user_id" bson:"user_id"`
	Key         string    `json:"key" bson:"key"`
	ChallengeID string    `json:"challenge_id" bson:"challenge_id"`
	Completed   bool      `json:"completed" bson:"completed"`
	CompletedAt time.Time `json:"completed_at" bson:"completed_at"`
	Points      int       `json:"points" bson:"points"`
}

// Notification is a milestone event written once per threshold crossing.
type Notification struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Title     string    `json:"title" bson:"title"`
	Body      string    `json:"body" bson:"body"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Read      bool      `json:"read" bson:"read"`
}
