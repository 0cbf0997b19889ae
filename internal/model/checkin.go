package model

import "time"

// CheckInID uniquely identifies a check-in
type CheckInID string

// CheckIn records one user seeing a player at the training spot.
// It is an observation only; paying and reporting are tracked
// separately. One check-in per reporter per player per training day.
type CheckIn struct {
	ID           CheckInID
	PlayerID     PlayerID
	ReporterID   UserID
	TrainingDate string // YYYY-MM-DD of the training day's start
	CreatedAt    time.Time
}

// PlayerActivity summarizes how often a player has been seen training
type PlayerActivity struct {
	Player        Player
	TotalCheckIns int
	LastCheckIn   *time.Time
	CheckInsToday int
	ActiveToday   bool
}
