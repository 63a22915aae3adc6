package models

import (
	"time"
)

// Reaction type identifiers. The set mirrors the reaction picker in the UI;
// handlers validate against KnownReaction before persisting.
const (
	ReactionLike  = 1
	ReactionLove  = 2
	ReactionLaugh = 3
	ReactionWow   = 4
)

// Reaction is a typed response on a submission. The combination of
// SubmissionID and UserID is unique: re-reacting overwrites the type and
// timestamp via an INSERT ... ON CONFLICT DO UPDATE upsert.
type Reaction struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	SubmissionID uint       `gorm:"not null;uniqueIndex:idx_submission_user" json:"submission_id"`
	Submission   Submission `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"-"`
	UserID       uint       `gorm:"not null;uniqueIndex:idx_submission_user" json:"user_id"`
	User         User       `gorm:"foreignKey:UserID" json:"-"`
	ReactionID   int        `gorm:"not null" json:"reaction_id"`
	CreatedAt    time.Time  `json:"created_at"`
}

// KnownReaction reports whether id is a recognized reaction type.
func KnownReaction(id int) bool {
	switch id {
	case ReactionLike, ReactionLove, ReactionLaugh, ReactionWow:
		return true
	}
	return false
}
