package crypto

import "errors"

var (
	// ErrInvalidKeyLength is returned by [NewCodec] when the supplied key is
	// not exactly 32 bytes (AES-256).
	ErrInvalidKeyLength = errors.New("encryption key must be exactly 32 bytes")

	// ErrEncryptionFailed is returned when encrypting a plaintext fails,
	// e.g. the random IV cannot be drawn from the OS CSPRNG.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrDecryptionFailed is returned when the stored (iv, ciphertext) pair
	// cannot be decrypted: hex decoding fails, a length is wrong, or the
	// padding check fails because the key does not match the ciphertext.
	ErrDecryptionFailed = errors.New("decryption failed")
)
