package learning

import (
	"time"

	"gorm.io/gorm"
)

// Progress statuses. Transitions only move forward:
// LOCKED -> UNLOCKED -> COMPLETED. COMPLETED is terminal for status,
// but score and attempts may still update on replays.
const (
	StatusLocked    = "LOCKED"
	StatusUnlocked  = "UNLOCKED"
	StatusCompleted = "COMPLETED"
)

// Progress is the single source of truth for a user's state on one
// section. A record does not exist until the section becomes reachable.
// The unique index on (UserID, SectionID) is load-bearing: concurrent
// duplicate submissions must not create two records.
type Progress struct {
	gorm.Model
	UserID        uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_section"`
	SubjectID     uint       `json:"subject_id" gorm:"index;not null"`
	ModuleID      uint       `json:"module_id" gorm:"index;not null"`
	SectionID     uint       `json:"section_id" gorm:"not null;uniqueIndex:idx_user_section"`
	Status        string     `json:"status" gorm:"default:'LOCKED'"`
	Score         int        `json:"score" gorm:"default:0"`
	Attempts      int        `json:"attempts" gorm:"default:0"`
	LastAttemptAt *time.Time `json:"last_attempt_at"`
	CompletedAt   *time.Time `json:"completed_at"`
	TimeSpent     int        `json:"time_spent" gorm:"default:0"` // minutes
}
