package security

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

// Stored credentials are sealed with nacl secretbox using the 32-byte key
// from BROKER_CREDENTIALS_KEY. The nonce is prepended to the ciphertext and
// the whole blob is base64 encoded.

const keySize = 32

var ErrInvalidCiphertext = errors.New("invalid ciphertext")

func loadKey() (*[keySize]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(GetConfig().CredentialsKey)
	if err != nil {
		return nil, fmt.Errorf("decode credentials key: %w", err)
	}
	if len(raw) != keySize {
		return nil, fmt.Errorf("credentials key must be %d bytes, got %d", keySize, len(raw))
	}

	var key [keySize]byte
	copy(key[:], raw)
	return &key, nil
}

// EncryptString seals a plaintext credential for storage.
func EncryptString(plaintext string) (string, error) {
	key, err := loadKey()
	if err != nil {
		return "", err
	}

	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, key)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptString opens a credential previously sealed with EncryptString.
func DecryptString(ciphertext string) (string, error) {
	key, err := loadKey()
	if err != nil {
		return "", err
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	if len(raw) < 24 {
		return "", ErrInvalidCiphertext
	}

	var nonce [24]byte
	copy(nonce[:], raw[:24])

	opened, ok := secretbox.Open(nil, raw[24:], &nonce, key)
	if !ok {
		return "", ErrInvalidCiphertext
	}
	return string(opened), nil
}
