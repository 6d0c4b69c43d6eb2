package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

// cbcCodec is the private implementation of [Codec]. It encrypts with
// AES-256-CBC and PKCS#7 padding, matching the storage format
// iv/encrypted_password as two separate hex strings.
type cbcCodec struct {
	key []byte
}

// NewCodec constructs a [Codec] around the given 256-bit key. The key is
// copied; the caller's slice may be reused. Returns [ErrInvalidKeyLength]
// if the key is not 32 bytes.
func NewCodec(key []byte) (Codec, error) {
	if len(key) != 32 {
		return nil, ErrInvalidKeyLength
	}

	return &cbcCodec{key: bytes.Clone(key)}, nil
}

// Encrypt implements [Codec]. It draws a fresh 16-byte IV from the OS
// CSPRNG, pads the plaintext to the AES block size and encrypts it in CBC
// mode. Both return values are hex-encoded. A failed attempt never leaves a
// half-built result; callers retrying will get a new IV on the next call.
func (c *cbcCodec) Encrypt(plaintext string) (string, string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", "", fmt.Errorf("%w: generating iv: %w", ErrEncryptionFailed, err)
	}

	padded := pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return hex.EncodeToString(iv), hex.EncodeToString(ciphertext), nil
}

// Decrypt implements [Codec]. It reverses [cbcCodec.Encrypt]: hex-decode
// both halves, CBC-decrypt, strip the padding. Every malformed-input case
// (bad hex, wrong IV length, truncated or unaligned ciphertext, padding
// mismatch from a wrong key) surfaces as [ErrDecryptionFailed].
func (c *cbcCodec) Decrypt(ivHex, ciphertextHex string) (string, error) {
	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return "", fmt.Errorf("%w: decoding iv: %w", ErrDecryptionFailed, err)
	}
	if len(iv) != aes.BlockSize {
		return "", fmt.Errorf("%w: iv must be %d bytes, got %d", ErrDecryptionFailed, aes.BlockSize, len(iv))
	}

	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", fmt.Errorf("%w: decoding ciphertext: %w", ErrDecryptionFailed, err)
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext length %d is not a positive multiple of the block size", ErrDecryptionFailed, len(ciphertext))
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	// A padding mismatch here almost always means the ciphertext was
	// produced under a different key.
	unpadded, err := unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	return string(unpadded), nil
}

// pad appends PKCS#7 padding so the result length is a multiple of
// blockSize. A plaintext that is already aligned (including the empty
// string) gets one full block of padding.
func pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

// unpad removes and validates PKCS#7 padding.
func unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize {
		return nil, fmt.Errorf("invalid padding byte %d", padLen)
	}

	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}

	return data[:len(data)-padLen], nil
}
