package model

import (
	"time"
)

type User struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         *string   `db:"name"`
	Bio          *string   `db:"bio"`
	CurrentRole  *string   `db:"role"`
	Company      *string   `db:"company"`
	LinkedIn     *string   `db:"linkedin"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// DisplayName falls back to the username when no name has been set.
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Username
}

// ProfileUpdate holds the optional profile fields submitted by the user.
// Empty fields are left untouched.
type ProfileUpdate struct {
	Username    string
	Email       string
	Name        string
	Bio         string
	CurrentRole string
	Company     string
	LinkedIn    string
}
