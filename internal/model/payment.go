package model

import "time"

// PaymentID uniquely identifies a payment
type PaymentID string

// Payment records one training payment filed for a player.
// The amount owed is not stored; it is derived at read time from the
// proof text and the report timing for the payment's training day.
type Payment struct {
	ID           PaymentID
	PlayerID     PlayerID
	PaidBy       UserID
	TrainingDate string // YYYY-MM-DD of the training day's start
	ProofText    string // deposit receipt pasted from the game client
	Override     bool   // admin mark-paid; always counts as on time
	CreatedAt    time.Time
}
