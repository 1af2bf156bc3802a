package security

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/chacha20poly1305"
)

// Sealer encrypts sensitive fields (reporter contact details) at rest with
// XChaCha20-Poly1305. Sealed values are base64(nonce || ciphertext).
type Sealer struct {
	key []byte
}

// NewSealer builds a Sealer from a base64 encoded 32 byte key. When the key is
// missing or invalid a random key is generated for this process and a warning
// is logged; values sealed with it cannot be opened after a restart.
func NewSealer(encodedKey string) *Sealer {
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err == nil && len(key) == chacha20poly1305.KeySize {
		return &Sealer{key: key}
	}
	if encodedKey != "" {
		zap.S().Warnw("invalid encryption key, using a temporary key for this session", "error", err)
	} else {
		zap.S().Warn("ENCRYPTION_KEY not set, using a temporary key for this session")
	}
	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		panic(fmt.Sprintf("failed to generate encryption key: %v", err))
	}
	return &Sealer{key: key}
}

// Seal encrypts plaintext. The empty string is returned unchanged.
func (s *Sealer) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", err
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a value produced by Seal. The empty string is returned unchanged.
func (s *Sealer) Open(sealed string) (string, error) {
	if sealed == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", err
	}
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", err
	}
	if len(raw) < aead.NonceSize() {
		return "", errors.New("sealed value too short")
	}
	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}
