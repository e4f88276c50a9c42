package models

// ExpenseEvent is published to Kafka when an expense is created. The consumer
// recomputes the owner's spending snapshot and pushes it to any live stream.
type ExpenseEvent struct {
	UserID    string  `json:"user_id"`
	ExpenseID string  `json:"expense_id"`
	Amount    float64 `json:"amount"`
	Category  string  `json:"category"`
}
