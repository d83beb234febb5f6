package db

import (
	"time"
)

// Account is the local stand-in for the hosted auth service's user record.
// Its ID is also the profile ID.
type Account struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// Profile table. Child rows are replaced wholesale on upsert.
type Profile struct {
	ID                  string `gorm:"primaryKey;size:36"`
	DisplayName         string `gorm:"size:100;not null;default:''"`
	Bio                 string `gorm:"type:text"`
	AvatarURL           string `gorm:"size:512"`
	OnboardingCompleted bool   `gorm:"not null;default:false"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`

	TeachingSkills    []TeachingSkill    `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	LearningSkills    []LearningSkill    `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	AvailabilitySlots []AvailabilitySlot `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
	SocialLinks       []SocialLink       `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE"`
}

// TeachingSkill is one skill a profile teaches.
//
// Indexes:
//   - idx_teaching_profile_skill(profile_id, skill_name) UNIQUE
//     One row per skill name per profile.
//   - idx_teaching_skill(skill_name)
//     Finds teachers of a skill.
type TeachingSkill struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	ProfileID string `gorm:"size:36;not null;uniqueIndex:idx_teaching_profile_skill,priority:1"`
	SkillName string `gorm:"size:64;not null;uniqueIndex:idx_teaching_profile_skill,priority:2;index:idx_teaching_skill"`
	Level     string `gorm:"size:16;not null"`
	Position  int    `gorm:"not null;default:0"`
}

// LearningSkill is one skill a profile wants to learn. An empty Level means
// any level is acceptable.
type LearningSkill struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	ProfileID string `gorm:"size:36;not null;uniqueIndex:idx_learning_profile_skill,priority:1"`
	SkillName string `gorm:"size:64;not null;uniqueIndex:idx_learning_profile_skill,priority:2;index:idx_learning_skill"`
	Level     string `gorm:"size:16;not null;default:''"`
	Position  int    `gorm:"not null;default:0"`
}

// AvailabilitySlot stores days as a comma-separated, monday-first list.
type AvailabilitySlot struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	ProfileID string `gorm:"size:36;not null;index"`
	Days      string `gorm:"size:80;not null"`
	StartTime string `gorm:"size:5;not null"`
	EndTime   string `gorm:"size:5;not null"`
	Position  int    `gorm:"not null;default:0"`
}

type SocialLink struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	ProfileID string `gorm:"size:36;not null;uniqueIndex:idx_social_profile_platform,priority:1"`
	Platform  string `gorm:"size:32;not null;uniqueIndex:idx_social_profile_platform,priority:2"`
	URL       string `gorm:"size:512;not null"`
	Position  int    `gorm:"not null;default:0"`
}

// Connection is a skill-exchange request between two users.
//
// Indexes:
//   - idx_connection_pair(pair_low, pair_high) UNIQUE
//     At most one connection per unordered pair, in any state. Concurrent
//     requests for the same pair collide here.
//   - idx_connection_recipient_status(recipient_id, status, created_at)
//     Incoming pending requests and their count.
//   - idx_connection_requester(requester_id)
type Connection struct {
	ID          string     `gorm:"primaryKey;size:36"`
	RequesterID string     `gorm:"size:36;not null;index:idx_connection_requester"`
	RecipientID string     `gorm:"size:36;not null;index:idx_connection_recipient_status,priority:1"`
	PairLow     string     `gorm:"size:36;not null;uniqueIndex:idx_connection_pair,priority:1"`
	PairHigh    string     `gorm:"size:36;not null;uniqueIndex:idx_connection_pair,priority:2"`
	Status      string     `gorm:"size:16;not null;index:idx_connection_recipient_status,priority:2"`
	CreatedAt   time.Time  `gorm:"autoCreateTime;index:idx_connection_recipient_status,priority:3"`
	ResolvedAt  *time.Time
}

// AllModels lists every table for AutoMigrate.
func AllModels() []any {
	return []any{
		&Account{},
		&Profile{},
		&TeachingSkill{},
		&LearningSkill{},
		&AvailabilitySlot{},
		&SocialLink{},
		&Connection{},
	}
}
