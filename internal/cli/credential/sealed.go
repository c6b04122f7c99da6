package credential

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/yndnr/spot-go/pkg/crypto/adaptive"
	"github.com/yndnr/spot-go/pkg/token"
)

const (
	sealedPrefix = "sealed.v1."
	saltSize     = 16
)

var kdfInfo = []byte("spot-cli credential")

// ErrSealedOpen is returned when a sealed token cannot be decrypted,
// usually because the secret changed.
var ErrSealedOpen = errors.New("credential: cannot open sealed token")

// SealedStore encrypts the token before handing it to the wrapped store.
// Each Save draws a fresh salt, stored in front of the ciphertext.
type SealedStore struct {
	inner  Store
	secret []byte
}

// Seal wraps store so the token is encrypted with a key derived from secret.
func Seal(store Store, secret string) (*SealedStore, error) {
	if secret == "" {
		return nil, errors.New("credential: empty secret")
	}
	return &SealedStore{inner: store, secret: []byte(secret)}, nil
}

func (s *SealedStore) Load(ctx context.Context) (string, error) {
	raw, err := s.inner.Load(ctx)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(raw, sealedPrefix) {
		return "", fmt.Errorf("%w: not a sealed value", ErrSealedOpen)
	}

	blob, err := base64.RawURLEncoding.DecodeString(strings.TrimPrefix(raw, sealedPrefix))
	if err != nil || len(blob) < saltSize {
		return "", fmt.Errorf("%w: malformed", ErrSealedOpen)
	}
	salt, ciphertext := blob[:saltSize], blob[saltSize:]

	key, err := adaptive.DeriveKey(s.secret, salt, kdfInfo)
	if err != nil {
		return "", err
	}
	plaintext, err := adaptive.Open(key, ciphertext, []byte(Key))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSealedOpen, err)
	}
	return string(plaintext), nil
}

func (s *SealedStore) Save(ctx context.Context, tok string) error {
	salt, err := token.RandomBytes(saltSize)
	if err != nil {
		return fmt.Errorf("credential: salt: %w", err)
	}
	key, err := adaptive.DeriveKey(s.secret, salt, kdfInfo)
	if err != nil {
		return err
	}
	c, err := adaptive.New(key)
	if err != nil {
		return err
	}
	ciphertext, err := c.Encrypt([]byte(tok), []byte(Key))
	if err != nil {
		return fmt.Errorf("credential: encrypt: %w", err)
	}

	blob := append(salt, ciphertext...)
	return s.inner.Save(ctx, sealedPrefix+base64.RawURLEncoding.EncodeToString(blob))
}

func (s *SealedStore) Delete(ctx context.Context) error {
	return s.inner.Delete(ctx)
}

func (s *SealedStore) Close() error {
	return s.inner.Close()
}

// Unwrap returns the store holding the sealed value.
func (s *SealedStore) Unwrap() Store {
	return s.inner
}
