package model

import "time"

// PayoutID uniquely identifies a reporter payout
type PayoutID string

// ReporterPayout records an admin settling part of what a reporter is
// owed in penalties. Rows are append-only; the outstanding balance is
// derived by folding payouts against earned penalties.
type ReporterPayout struct {
	ID         PayoutID
	ReporterID UserID
	Amount     int // gold pieces handed over
	PaidBy     UserID
	CreatedAt  time.Time
}
