package model

import "time"

// DefaultProfilePic is the sentinel filename meaning "no custom picture";
// clients fall back to a bundled default image for it.
const DefaultProfilePic = "default-avatar.png"

// User represents an authenticated back-office user.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:100;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	ProfilePic   string    `json:"profile_pic" gorm:"size:100;default:'default-avatar.png'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasCustomPic reports whether the user has uploaded their own picture.
func (u *User) HasCustomPic() bool {
	return u.ProfilePic != "" && u.ProfilePic != DefaultProfilePic
}
