// Package piicrypt implements field-level encryption for compliance PII.
//
// Construction (fixed by the stored data format — do not change):
//   - key  = SHA-256(shared secret), used as an AES-256-GCM key
//   - blob = nonce(12 bytes) ‖ ciphertext(+tag), stored as a single bytea
//
// A fresh random nonce is drawn per field per write. Plaintext is never
// persisted; callers keep only the last-4 mask for display.
package piicrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"strings"
)

const nonceSize = 12

var ErrInvalidBlob = errors.New("piicrypt: invalid blob")

// Encryptor encrypts/decrypts individual PII fields.
type Encryptor struct {
	aead cipher.AEAD
}

// New derives the AES-256 key from the shared secret.
func New(secret string) (*Encryptor, error) {
	if secret == "" {
		return nil, errors.New("piicrypt: empty secret")
	}
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, err
	}
	return &Encryptor{aead: aead}, nil
}

// Encrypt seals plaintext under a fresh random nonce and returns
// nonce‖ciphertext.
func (e *Encryptor) Encrypt(plaintext string) ([]byte, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	ct := e.aead.Seal(nil, nonce, []byte(plaintext), nil)
	return append(nonce, ct...), nil
}

// Decrypt opens a nonce‖ciphertext blob. Used only by operational tooling —
// the API never returns decrypted values to clients.
func (e *Encryptor) Decrypt(blob []byte) (string, error) {
	if len(blob) < nonceSize+e.aead.Overhead() {
		return "", ErrInvalidBlob
	}
	pt, err := e.aead.Open(nil, blob[:nonceSize], blob[nonceSize:], nil)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

// Last4 returns the final 4 characters of the value with all whitespace
// stripped, or "" when the value is blank. Values shorter than 4 characters
// are returned whole.
func Last4(raw string) string {
	v := strings.Join(strings.Fields(raw), "")
	if v == "" {
		return ""
	}
	if len(v) <= 4 {
		return v
	}
	return v[len(v)-4:]
}
