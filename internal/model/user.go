package model

import "time"

// UserID uniquely identifies a registered account
type UserID string

// Vocation is a character's class in the game
type Vocation string

// Supported vocations
const (
	VocationMS Vocation = "MS" // Master Sorcerer
	VocationED Vocation = "ED" // Elder Druid
	VocationEK Vocation = "EK" // Elite Knight
	VocationRP Vocation = "RP" // Royal Paladin
)

// Valid reports whether v is a known vocation
func (v Vocation) Valid() bool {
	switch v {
	case VocationMS, VocationED, VocationEK, VocationRP:
		return true
	}
	return false
}

// User represents a registered account
// The character name doubles as the login name and maps to a Player of the same name
type User struct {
	ID            UserID
	CharacterName string // unique
	PasswordHash  string // bcrypt hash
	Vocation      Vocation
	IsAdmin       bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
