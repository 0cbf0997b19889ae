package model

import "time"

// PlayerID uniquely identifies a tracked character
type PlayerID string

// Player represents a character tracked for training payments.
// Not every player has an account; anyone can be reported or paid for.
type Player struct {
	ID            PlayerID
	CharacterName string // unique, case-sensitive
	Hidden        bool   // excluded from standings, history retained
	CreatedAt     time.Time

	// Report marker for the most recent report filed against this
	// player. Only meaningful while it falls inside the current
	// training day; a new day supersedes it.
	ReportedAt *time.Time
	ReportedBy *UserID
}

// ReportedWithin reports whether the player's report marker falls
// inside the half-open window [start, end).
func (p *Player) ReportedWithin(start, end time.Time) bool {
	if p.ReportedAt == nil {
		return false
	}
	return !p.ReportedAt.Before(start) && p.ReportedAt.Before(end)
}
