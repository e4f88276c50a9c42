package models

import "time"

// Expense is the canonical expense record. Immutable once created; owned by
// the user who created it.
type Expense struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	UserID         string    `json:"user_id" bson:"user_id"`
	Amount         float64   `json:"amount" bson:"amount"`
	Category       string    `json:"category" bson:"category"`
	Description    string    `json:"description" bson:"description"`
	Timestamp      time.Time `json:"timestamp" bson:"timestamp"`
	IsSubscription bool      `json:"is_subscription" bson:"is_subscription"`
}

// LegacyTransaction is the older shape some installs wrote to a separate
// "transactions" collection (owner under "uid", no description or flag).
// It only exists so the migration can read it; nothing else accepts it.
type LegacyTransaction struct {
	ID       string  `bson:"_id,omitempty"`
	UID      string  `bson:"uid"`
	Amount   float64 `bson:"amount"`
	Category string  `bson:"category"`
}

// Canonical converts a legacy transaction into the canonical expense shape.
// Legacy rows carry no timestamp, so the migration time is used.
func (t LegacyTransaction) Canonical(migratedAt time.Time) Expense {
	return Expense{
		UserID:    t.UID,
		Amount:    t.Amount,
		Category:  t.Category,
		Timestamp: migratedAt,
	}
}
