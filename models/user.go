package models

import "time"

// User represents an account entity used for authentication and authorization.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique login identifier chosen by the user.
	Username string `json:"username"`

	// Email is the unique e-mail address of the user. Either Username or
	// Email may be presented during login.
	Email string `json:"email"`

	// Fullname is the display name of the user. Non-sensitive.
	Fullname string `json:"fullname"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// Never serialized to JSON.
	PasswordHash string `json:"-"`

	// RefreshToken is the single currently valid refresh token for this
	// user, or the empty string when no session is active. Mutated on every
	// login, refresh and logout. Never serialized to JSON.
	RefreshToken string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last account mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
