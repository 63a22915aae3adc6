package models

import (
	"time"
)

// Reply is a comment attached to exactly one submission.
type Reply struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	SubmissionID uint       `gorm:"not null;index" json:"submission_id"`
	Submission   Submission `gorm:"foreignKey:SubmissionID;constraint:OnDelete:CASCADE" json:"-"`
	UserID       *uint      `gorm:"index" json:"user_id"`
	User         *User      `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`
	Text         string     `gorm:"type:text;not null" json:"text"`
	CreatedAt    time.Time  `json:"created_at"`
}

// AuthorName returns the author's display name, or a placeholder when the
// account has been deleted.
func (r Reply) AuthorName() string {
	if r.User == nil {
		return "deleted user"
	}
	return r.User.FullName()
}

// OwnedBy reports whether the reply belongs to the given user. The value
// receiver keeps the method callable on replies ranged over in templates.
func (r Reply) OwnedBy(userID uint) bool {
	return userID != 0 && r.UserID != nil && *r.UserID == userID
}
