package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
)

// SecretKeySize is the AES-256 key length in bytes.
const SecretKeySize = 32

var (
	// ErrInvalidKey is returned when the cipher key is not 32 bytes.
	ErrInvalidKey = errors.New("cryptox: invalid secret key")
	// ErrDecrypt is returned for any malformed or undecryptable envelope.
	ErrDecrypt = errors.New("cryptox: decrypt failed")
)

// SecretCipher encrypts short secrets (TOTP seeds) at rest using AES-256-CBC
// with PKCS#7 padding. The envelope format is hex(iv) ":" hex(ciphertext).
type SecretCipher struct {
	block cipher.Block
	rand  io.Reader
}

// NewSecretCipher builds a cipher from a 32-byte key.
func NewSecretCipher(key []byte) (*SecretCipher, error) {
	if len(key) != SecretKeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKey, SecretKeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return &SecretCipher{block: block, rand: rand.Reader}, nil
}

// ParseSecretKey accepts either 64 hex characters or a raw 32-byte string.
func ParseSecretKey(s string) ([]byte, error) {
	if len(s) == hex.EncodedLen(SecretKeySize) {
		if key, err := hex.DecodeString(s); err == nil {
			return key, nil
		}
	}
	if len(s) == SecretKeySize {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("%w: expected %d raw bytes or %d hex chars", ErrInvalidKey, SecretKeySize, hex.EncodedLen(SecretKeySize))
}

// Encrypt returns a fresh envelope for plaintext. Every call uses a new IV,
// so identical inputs produce different envelopes.
func (c *SecretCipher) Encrypt(plaintext string) (string, error) {
	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(c.rand, iv); err != nil {
		return "", fmt.Errorf("failed to generate iv: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, iv).CryptBlocks(ct, padded)

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(ct), nil
}

// Decrypt reverses Encrypt. Any structural, encoding or padding problem
// results in ErrDecrypt.
func (c *SecretCipher) Decrypt(envelope string) (string, error) {
	ivHex, ctHex, ok := strings.Cut(envelope, ":")
	if !ok {
		return "", fmt.Errorf("%w: missing separator", ErrDecrypt)
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil || len(iv) != aes.BlockSize {
		return "", fmt.Errorf("%w: bad iv", ErrDecrypt)
	}
	ct, err := hex.DecodeString(ctHex)
	if err != nil || len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: bad ciphertext", ErrDecrypt)
	}

	pt := make([]byte, len(ct))
	cipher.NewCBCDecrypter(c.block, iv).CryptBlocks(pt, ct)

	pt, err = pkcs7Unpad(pt, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

func pkcs7Pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, size int) ([]byte, error) {
	if len(b) == 0 || len(b)%size != 0 {
		return nil, fmt.Errorf("%w: bad padding", ErrDecrypt)
	}
	n := int(b[len(b)-1])
	if n == 0 || n > size {
		return nil, fmt.Errorf("%w: bad padding", ErrDecrypt)
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrDecrypt)
		}
	}
	return b[:len(b)-n], nil
}
