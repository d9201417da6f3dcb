package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// User is a profile record. Authentication happens outside this backend,
// identity arrives as IDs and emails on the API.
type User struct {
	DefaultModel
	Email       string `gorm:"uniqueIndex"`
	DisplayName string
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.DisplayName = strings.TrimSpace(u.DisplayName)
	return nil
}

// UserByEmail looks up a user account by email.
//
// The boolean reports whether an account exists; a missing account is a
// normal outcome for goal sharing, not an error.
func UserByEmail(email string) (User, bool, error) {
	var user User

	err := withRetry(func() error {
		return DB.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	})
	if errors.Is(err, ErrResourceNotFound) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}

	return user, true, nil
}
