// Package crypto implements the secret codec: symmetric encryption of a
// single plaintext password into a hex-encoded (iv, ciphertext) pair and
// back. The codec owns no key lifecycle — it receives one static 256-bit key
// at construction and uses it for the lifetime of the process.
package crypto

// Codec encrypts and decrypts credential passwords.
//
// Encrypt draws a fresh random IV on every call; an IV is never reused
// across records. Decrypt fails with [ErrDecryptionFailed] on malformed
// input or a key mismatch — it never silently returns garbage.
type Codec interface {
	Encrypt(plaintext string) (iv string, ciphertext string, err error)
	Decrypt(iv string, ciphertext string) (plaintext string, err error)
}
