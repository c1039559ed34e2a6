package services

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// MessageCipher encrypts message bodies for at-rest storage with AES-CFB.
// The 32-byte key is derived from the configured secret with argon2id and the
// IV from the configured seed; both are fixed for the process lifetime.
//
// Reusing one IV for every message leaks plaintext prefixes between messages
// that share one. A production hardening would generate a per-message nonce
// and store it alongside the ciphertext; the interface shape would not
// change.
type MessageCipher struct {
	block cipher.Block
	iv    []byte
}

const cipherKeySalt = "ember-message-key"

// NewMessageCipher derives the key and IV from the configured secrets.
func NewMessageCipher(secret, ivSeed string) (*MessageCipher, error) {
	if secret == "" {
		return nil, errors.New("message secret must not be empty")
	}
	if ivSeed == "" {
		return nil, errors.New("message IV seed must not be empty")
	}

	key := argon2.IDKey([]byte(secret), []byte(cipherKeySalt), 1, 64*1024, 4, 32)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize message cipher: %w", err)
	}

	ivHash := sha256.Sum256([]byte(ivSeed))
	return &MessageCipher{
		block: block,
		iv:    ivHash[:aes.BlockSize],
	}, nil
}

// Encrypt returns the base64-encoded ciphertext of plaintext.
func (c *MessageCipher) Encrypt(plaintext string) string {
	out := make([]byte, len(plaintext))
	cipher.NewCFBEncrypter(c.block, c.iv).XORKeyStream(out, []byte(plaintext))
	return base64.StdEncoding.EncodeToString(out)
}

// Decrypt reverses Encrypt. Decrypt(Encrypt(x)) == x for any valid UTF-8 x.
func (c *MessageCipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	out := make([]byte, len(raw))
	cipher.NewCFBDecrypter(c.block, c.iv).XORKeyStream(out, raw)
	return string(out), nil
}
