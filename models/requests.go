package models

// RegisterRequest carries the data needed to create a new account.
// At least one of Username and Email must be present.
type RegisterRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Fullname string `json:"fullname,omitempty"`
	Password string `json:"password"`
}

// LoginRequest authenticates by username or email plus the account password.
type LoginRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// RefreshRequest optionally carries the refresh token in the request body.
// When absent the token is read from the session cookie instead.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

// ChangePasswordRequest carries the old password for verification and the
// replacement.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// UpdateUserRequest carries the profile fields to change. Empty fields are
// left untouched.
type UpdateUserRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Fullname string `json:"fullname,omitempty"`
}

// CredentialRequest is the write shape for credentials. The platform is
// addressed by title; on create a missing platform is registered on the fly.
// Password is the only plaintext secret field and is encrypted before it
// reaches storage. On update an empty Password keeps the stored secret.
type CredentialRequest struct {
	PlatformTitle string `json:"platform"`
	WebsiteURL    string `json:"website_url,omitempty"`
	Username      string `json:"username,omitempty"`
	Email         string `json:"email,omitempty"`
	Password      string `json:"password,omitempty"`
}

// PlatformRequest is the write shape for explicit platform management.
type PlatformRequest struct {
	Title      string `json:"title"`
	WebsiteURL string `json:"website_url,omitempty"`
}
