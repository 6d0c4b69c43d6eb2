package models

import (
	"errors"
	"time"
)

// ErrIncompleteSecret is returned by [Credential.SetSecret] when one of the
// two secret halves (IV, ciphertext) is missing. A credential must never be
// persisted with only one of them set.
var ErrIncompleteSecret = errors.New("credential secret requires both iv and ciphertext")

// Credential is a login secret owned by exactly one user and scoped to
// exactly one platform.
//
// The password is a virtual field: it never exists on the struct in
// plaintext. What is stored is the pair (iv, encryptedPassword) produced by
// the secret codec. Both fields are unexported on purpose — they can only be
// set together through [Credential.SetSecret] and read together through
// [Credential.Secret], and they are invisible to encoding/json, so no output
// representation can ever leak them.
type Credential struct {
	// CredentialID is the internal unique identifier of the credential.
	CredentialID int64 `json:"id"`

	// OwnerID references the owning user. Every query against credentials
	// is scoped by it; it is never taken from request input.
	OwnerID int64 `json:"-"`

	// PlatformID references the platform this credential belongs to.
	PlatformID int64 `json:"platform_id"`

	// Username and Email identify the login at the target platform.
	// At least one of the two must be present.
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`

	// PlatformTitle and WebsiteURL are populated on reads from the joined
	// platform row for display purposes. They are not persisted on the
	// credential itself.
	PlatformTitle string `json:"platform,omitempty"`
	WebsiteURL    string `json:"website_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// iv is the hex-encoded random initialization vector drawn for this
	// record's encryption. Unique per encryption, never reused.
	iv string

	// encryptedPassword is the hex-encoded AES-256-CBC ciphertext of the
	// plaintext password.
	encryptedPassword string
}

// TableName returns the name of the database table
// associated with the Credential model.
func (c Credential) TableName() string {
	return "credentials"
}

// SetSecret installs the encrypted secret pair on the credential.
// Both halves must be non-empty; otherwise [ErrIncompleteSecret] is returned
// and the credential is left unchanged, so a partially-encrypted record can
// never be constructed.
func (c *Credential) SetSecret(iv, ciphertext string) error {
	if iv == "" || ciphertext == "" {
		return ErrIncompleteSecret
	}

	c.iv = iv
	c.encryptedPassword = ciphertext

	return nil
}

// Secret returns the stored (iv, ciphertext) pair. Callers are the
// persistence layer, which writes the pair to the database, and the reveal
// operation, which hands it to the codec for decryption.
func (c *Credential) Secret() (iv, ciphertext string) {
	return c.iv, c.encryptedPassword
}

// HasSecret reports whether both secret halves are set.
func (c *Credential) HasSecret() bool {
	return c.iv != "" && c.encryptedPassword != ""
}

// HasLoginIdentifier reports whether at least one of username/email is set.
func (c *Credential) HasLoginIdentifier() bool {
	return c.Username != "" || c.Email != ""
}
