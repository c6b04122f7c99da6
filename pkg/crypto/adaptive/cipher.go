package adaptive

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"runtime"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// KeySize is the key length used by both algorithms.
const KeySize = 32

// CipherType identifies the cipher algorithm.
type CipherType string

const (
	CipherAESGCM   CipherType = "aes-gcm"
	CipherChaCha20 CipherType = "chacha20-poly1305"
)

// Algorithm tags written as the first ciphertext byte.
const (
	tagAESGCM   byte = 1
	tagChaCha20 byte = 2
)

var (
	// ErrInvalidKey is returned for keys that are not KeySize bytes.
	ErrInvalidKey = errors.New("adaptive: key must be 32 bytes")
	// ErrCiphertextTooShort is returned when input cannot hold a nonce.
	ErrCiphertextTooShort = errors.New("adaptive: ciphertext too short")
	// ErrUnknownAlgorithm is returned for an unrecognized algorithm tag.
	ErrUnknownAlgorithm = errors.New("adaptive: unknown algorithm")
)

// Cipher provides authenticated encryption.
type Cipher interface {
	// Type returns the cipher type.
	Type() CipherType
	// Encrypt seals plaintext. additionalData is authenticated, not stored.
	Encrypt(plaintext, additionalData []byte) ([]byte, error)
	// Decrypt opens a ciphertext produced by Encrypt with the same key.
	Decrypt(ciphertext, additionalData []byte) ([]byte, error)
}

// New creates a cipher using the fastest algorithm for this machine.
func New(key []byte) (Cipher, error) {
	if hasAESNI() {
		return NewWithType(key, CipherAESGCM)
	}
	return NewWithType(key, CipherChaCha20)
}

// NewWithType creates a cipher of the specified type.
func NewWithType(key []byte, cipherType CipherType) (Cipher, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}

	switch cipherType {
	case CipherAESGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, err
		}
		return &aeadCipher{typ: cipherType, tag: tagAESGCM, aead: aead}, nil
	case CipherChaCha20:
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, err
		}
		return &aeadCipher{typ: cipherType, tag: tagChaCha20, aead: aead}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, cipherType)
	}
}

// Open decrypts a ciphertext produced by any Cipher created from key,
// picking the algorithm from the ciphertext's tag.
func Open(key, ciphertext, additionalData []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, ErrCiphertextTooShort
	}

	var typ CipherType
	switch ciphertext[0] {
	case tagAESGCM:
		typ = CipherAESGCM
	case tagChaCha20:
		typ = CipherChaCha20
	default:
		return nil, fmt.Errorf("%w: tag %d", ErrUnknownAlgorithm, ciphertext[0])
	}

	c, err := NewWithType(key, typ)
	if err != nil {
		return nil, err
	}
	return c.Decrypt(ciphertext, additionalData)
}

// DeriveKey stretches secret into a KeySize key with HKDF-SHA256.
// salt should be random and stored next to the ciphertext.
func DeriveKey(secret, salt, info []byte) ([]byte, error) {
	if len(secret) == 0 {
		return nil, errors.New("adaptive: empty secret")
	}
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, salt, info), key); err != nil {
		return nil, fmt.Errorf("adaptive: derive key: %w", err)
	}
	return key, nil
}

// hasAESNI reports whether AES is hardware accelerated. Go's crypto/aes
// uses AES-NI on amd64 and the ARMv8 crypto extensions on arm64.
func hasAESNI() bool {
	switch runtime.GOARCH {
	case "amd64", "arm64":
		return true
	default:
		return false
	}
}

// aeadCipher seals as tag || nonce || ciphertext+mac.
type aeadCipher struct {
	typ  CipherType
	tag  byte
	aead cipher.AEAD
}

func (c *aeadCipher) Type() CipherType { return c.typ }

func (c *aeadCipher) Encrypt(plaintext, additionalData []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	out := make([]byte, 1+nonceSize, 1+nonceSize+len(plaintext)+c.aead.Overhead())
	out[0] = c.tag
	nonce := out[1 : 1+nonceSize]
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return c.aead.Seal(out, nonce, plaintext, additionalData), nil
}

func (c *aeadCipher) Decrypt(ciphertext, additionalData []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	if len(ciphertext) < 1+nonceSize+c.aead.Overhead() {
		return nil, ErrCiphertextTooShort
	}
	if ciphertext[0] != c.tag {
		return nil, fmt.Errorf("%w: tag %d for %s", ErrUnknownAlgorithm, ciphertext[0], c.typ)
	}

	nonce := ciphertext[1 : 1+nonceSize]
	return c.aead.Open(nil, nonce, ciphertext[1+nonceSize:], additionalData)
}
