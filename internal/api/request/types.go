package request

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	CharacterName string `json:"character_name"`
	Password      string `json:"password"`
	Vocation      string `json:"vocation"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	CharacterName string `json:"character_name"`
	Password      string `json:"password"`
}

// ReportRequest is the request body for reporting a player
type ReportRequest struct {
	CharacterName string `json:"character_name"`
}

// PaymentRequest is the request body for recording a payment.
// An empty character name pays for the caller's own character.
type PaymentRequest struct {
	CharacterName string `json:"character_name,omitempty"`
	Proof         string `json:"proof"`
}

// CheckInRequest is the request body for checking in a training player
type CheckInRequest struct {
	CharacterName string `json:"character_name"`
}

// PayoutRequest is the request body for recording a reporter payout
type PayoutRequest struct {
	Amount int `json:"amount"`
}

// VisibilityRequest is the request body for toggling player visibility
type VisibilityRequest struct {
	Hidden bool `json:"hidden"`
}

// SkillValue is one skill's level and progress
type SkillValue struct {
	Level   int `json:"level"`
	Percent int `json:"percent"`
}

// SkillSnapshotRequest is the request body for recording a skill snapshot
type SkillSnapshotRequest struct {
	Sword     *SkillValue `json:"sword,omitempty"`
	Club      *SkillValue `json:"club,omitempty"`
	Axe       *SkillValue `json:"axe,omitempty"`
	Distance  *SkillValue `json:"distance,omitempty"`
	Shielding *SkillValue `json:"shielding,omitempty"`
	Magic     *SkillValue `json:"magic,omitempty"`
}
