package models

import (
	"strings"

	"gorm.io/gorm"
)

// User is a registered dashboard account. Email is the identity key and is
// normalized to lowercase before persisting; the password column holds a
// bcrypt hash and is never serialized back to clients.
type User struct {
	BaseModel
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(100);not null" json:"-"`
}

// BeforeCreate normalizes the email so uniqueness is case-insensitive.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}
