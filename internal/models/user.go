// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account. The password field always holds a
// bcrypt hash, never the plaintext.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Manager   bool      `gorm:"not null;default:false" json:"manager"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Submissions []Submission `gorm:"foreignKey:UserID" json:"submissions,omitempty"`
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
