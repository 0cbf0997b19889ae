package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player already exists")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("character name already registered")

	// Report errors
	ErrAlreadyReported    = errors.New("player already reported today")
	ErrSelfReport         = errors.New("cannot report your own character")
	ErrEmptyCharacterName = errors.New("character name is required")

	// Payment errors
	ErrAlreadyPaid     = errors.New("player already paid today")
	ErrEmptyProof      = errors.New("payment proof is required")
	ErrPaymentNotFound = errors.New("payment not found")

	// Check-in errors
	ErrAlreadyCheckedIn = errors.New("player already checked in today")
	ErrSelfCheckIn      = errors.New("cannot check in your own character")

	// Payout errors
	ErrInvalidPayoutAmount = errors.New("payout amount must be positive")

	// Account errors
	ErrInvalidVocation  = errors.New("invalid vocation")
	ErrPasswordTooShort = errors.New("password must be at least 4 characters")

	// Skill errors
	ErrEmptySnapshot = errors.New("snapshot has no skill values")
	ErrInvalidSkill  = errors.New("invalid skill value")

	// Authorization errors
	ErrNotAdmin = errors.New("admin privileges required")
)
