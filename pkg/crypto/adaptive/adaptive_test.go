package adaptive

import (
	"bytes"
	"errors"
	"testing"
)

var key32 = func() []byte {
	k := make([]byte, KeySize)
	for i := range k {
		k[i] = byte(i)
	}
	return k
}()

var allTypes = []CipherType{CipherAESGCM, CipherChaCha20}

func TestNew(t *testing.T) {
	c, err := New(key32)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if c.Type() != CipherAESGCM && c.Type() != CipherChaCha20 {
		t.Errorf("New() returned unknown cipher type: %s", c.Type())
	}
}

func TestNewWithType_InvalidKey(t *testing.T) {
	for _, typ := range allTypes {
		for _, size := range []int{0, 16, 24, 31, 33} {
			if _, err := NewWithType(make([]byte, size), typ); !errors.Is(err, ErrInvalidKey) {
				t.Errorf("%s with %d-byte key: error = %v, want ErrInvalidKey", typ, size, err)
			}
		}
	}
}

func TestNewWithType_Unknown(t *testing.T) {
	if _, err := NewWithType(key32, "rot13"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("error = %v, want ErrUnknownAlgorithm", err)
	}
}

func TestEncryptDecrypt(t *testing.T) {
	tests := []struct {
		name           string
		plaintext      []byte
		additionalData []byte
	}{
		{"Empty", []byte{}, nil},
		{"Token", []byte("eyJhbGciOiJIUzI1NiJ9.e30.sig"), []byte("spot-admin-token")},
		{"Large", bytes.Repeat([]byte("A"), 1024), nil},
	}

	for _, typ := range allTypes {
		c, err := NewWithType(key32, typ)
		if err != nil {
			t.Fatalf("NewWithType(%s) error = %v", typ, err)
		}
		for _, tt := range tests {
			t.Run(string(typ)+"/"+tt.name, func(t *testing.T) {
				sealed, err := c.Encrypt(tt.plaintext, tt.additionalData)
				if err != nil {
					t.Fatalf("Encrypt() error = %v", err)
				}

				got, err := c.Decrypt(sealed, tt.additionalData)
				if err != nil {
					t.Fatalf("Decrypt() error = %v", err)
				}
				if !bytes.Equal(got, tt.plaintext) {
					t.Errorf("Decrypt() = %q, want %q", got, tt.plaintext)
				}

				opened, err := Open(key32, sealed, tt.additionalData)
				if err != nil {
					t.Fatalf("Open() error = %v", err)
				}
				if !bytes.Equal(opened, tt.plaintext) {
					t.Errorf("Open() = %q, want %q", opened, tt.plaintext)
				}
			})
		}
	}
}

func TestDecrypt_Tampered(t *testing.T) {
	for _, typ := range allTypes {
		c, _ := NewWithType(key32, typ)
		sealed, err := c.Encrypt([]byte("secret"), []byte("aad"))
		if err != nil {
			t.Fatal(err)
		}

		tampered := bytes.Clone(sealed)
		tampered[len(tampered)-1] ^= 0xFF
		if _, err := c.Decrypt(tampered, []byte("aad")); err == nil {
			t.Errorf("%s: tampered ciphertext should fail", typ)
		}
		if _, err := c.Decrypt(sealed, []byte("other")); err == nil {
			t.Errorf("%s: wrong AAD should fail", typ)
		}
		if _, err := c.Decrypt(sealed[:5], nil); !errors.Is(err, ErrCiphertextTooShort) {
			t.Errorf("%s: short input error = %v", typ, err)
		}
	}
}

func TestDecrypt_WrongAlgorithm(t *testing.T) {
	aes, _ := NewWithType(key32, CipherAESGCM)
	chacha, _ := NewWithType(key32, CipherChaCha20)

	sealed, err := aes.Encrypt([]byte("secret"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := chacha.Decrypt(sealed, nil); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("error = %v, want ErrUnknownAlgorithm", err)
	}
}

func TestOpen_BadTag(t *testing.T) {
	if _, err := Open(key32, nil, nil); !errors.Is(err, ErrCiphertextTooShort) {
		t.Errorf("empty input error = %v", err)
	}
	if _, err := Open(key32, []byte{9, 1, 2, 3}, nil); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("bad tag error = %v", err)
	}
}

func TestEncrypt_Uniqueness(t *testing.T) {
	c, _ := New(key32)
	a, _ := c.Encrypt([]byte("same"), nil)
	b, _ := c.Encrypt([]byte("same"), nil)
	if bytes.Equal(a, b) {
		t.Error("two encryptions of the same plaintext should differ")
	}
}

func TestDeriveKey(t *testing.T) {
	salt := []byte("0123456789abcdef")
	k1, err := DeriveKey([]byte("hunter2"), salt, []byte("info"))
	if err != nil {
		t.Fatal(err)
	}
	if len(k1) != KeySize {
		t.Errorf("len = %d, want %d", len(k1), KeySize)
	}

	k2, _ := DeriveKey([]byte("hunter2"), salt, []byte("info"))
	if !bytes.Equal(k1, k2) {
		t.Error("DeriveKey should be deterministic")
	}

	k3, _ := DeriveKey([]byte("hunter2"), []byte("other-salt"), []byte("info"))
	if bytes.Equal(k1, k3) {
		t.Error("different salts should give different keys")
	}

	if _, err := DeriveKey(nil, salt, nil); err == nil {
		t.Error("empty secret should fail")
	}
}
