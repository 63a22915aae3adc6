package models

import (
	"time"
)

// Submission is a top-level post in the feed. Rows are hard-deleted; the
// foreign keys on Reply and Reaction cascade at the storage layer so a
// delete is a single statement.
type Submission struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID *uint  `gorm:"index" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	Text   string `gorm:"type:text;not null" json:"text"`
	// Negative records the moderation outcome. Persisted rows always carry
	// false: negatively scored text is rejected before insert.
	Negative  bool      `gorm:"not null;default:false" json:"negative"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Replies   []Reply    `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"replies,omitempty"`
	Reactions []Reaction `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"-"`

	// Computed at query time by the feed aggregator; never persisted.
	ReactionCount int64         `gorm:"-" json:"reaction_count"`
	Breakdown     map[int]int64 `gorm:"-" json:"reaction_breakdown,omitempty"`
	MyReaction    int           `gorm:"-" json:"my_reaction,omitempty"`
}

// AuthorName returns the author's display name, or a placeholder when the
// account has been deleted (UserID is NULL).
func (s *Submission) AuthorName() string {
	if s.User == nil {
		return "deleted user"
	}
	return s.User.FullName()
}

// OwnedBy reports whether the submission belongs to the given user.
func (s *Submission) OwnedBy(userID uint) bool {
	return userID != 0 && s.UserID != nil && *s.UserID == userID
}

// ReactionCountFor returns the breakdown count for one reaction type.
func (s *Submission) ReactionCountFor(reactionID int) int64 {
	return s.Breakdown[reactionID]
}
