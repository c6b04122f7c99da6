// Package adaptive provides authenticated encryption for small secrets
// kept on disk by spot-cli, such as the persisted bearer token.
//
// Supported Algorithms:
//
//   - AES-256-GCM: preferred when hardware AES support is available
//   - ChaCha20-Poly1305: fallback for other architectures
//
// Keys are derived from a user secret with HKDF-SHA256. Ciphertexts are
// self-describing: a one-byte algorithm tag, then the nonce, then the
// sealed data, so a file written on one machine opens on another.
//
// Usage:
//
//	key, err := adaptive.DeriveKey(secret, salt, []byte("spot credential"))
//	c, err := adaptive.New(key)
//	sealed, err := c.Encrypt(plaintext, aad)
//	plaintext, err := adaptive.Open(key, sealed, aad)
package adaptive
