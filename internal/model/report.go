package model

import "time"

// ReportID uniquely identifies a report
type ReportID string

// Report is an append-only record of one player reporting another
// for training without paying. Rows are never deleted; a report is
// superseded when the next training day starts.
type Report struct {
	ID         ReportID
	PlayerID   PlayerID // the reported player
	ReporterID UserID
	CreatedAt  time.Time
}

// Deadline returns the moment by which the reported player must pay
// the base amount. Paying at exactly the deadline is still on time.
func (r *Report) Deadline() time.Time {
	return r.CreatedAt.Add(GracePeriod)
}
