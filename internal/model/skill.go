package model

import "time"

// SnapshotID uniquely identifies a skill snapshot
type SnapshotID string

// SkillValue is one skill's level and progress toward the next level
type SkillValue struct {
	Level   int
	Percent int // 0-99
}

// SkillSnapshot captures a user's training skills at a point in time
type SkillSnapshot struct {
	ID         SnapshotID
	UserID     UserID
	Sword      *SkillValue
	Club       *SkillValue
	Axe        *SkillValue
	Distance   *SkillValue
	Shielding  *SkillValue
	Magic      *SkillValue
	RecordedAt time.Time
}

// Empty reports whether the snapshot carries no skill values at all
func (s *SkillSnapshot) Empty() bool {
	return s.Sword == nil && s.Club == nil && s.Axe == nil &&
		s.Distance == nil && s.Shielding == nil && s.Magic == nil
}
