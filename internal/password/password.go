// Package password turns plaintext credentials into the digests stored in the
// users table.
//
// Every Hasher is deterministic: the same plaintext always yields the same
// digest, so a credential lookup can compare digests directly.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Hasher computes and checks password digests.
type Hasher interface {
	Hash(plaintext string) string
	Verify(plaintext, digest string) bool
}

const (
	NameSHA256   = "sha256"
	NameArgon2id = "argon2id"
)

// New returns the hasher registered under name. salt is only used by argon2id.
func New(name, salt string) (Hasher, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameSHA256:
		return SHA256{}, nil
	case NameArgon2id:
		if salt == "" {
			return nil, fmt.Errorf("argon2id hasher requires a salt")
		}
		return NewArgon2id([]byte(salt)), nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", name)
	}
}

// SHA256 is an unsalted, single-round SHA-256 digest in lowercase hex.
// Kept as the default so databases seeded by earlier releases still verify.
type SHA256 struct{}

func (SHA256) Hash(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

func (h SHA256) Verify(plaintext, digest string) bool {
	return constantTimeEqual(h.Hash(plaintext), digest)
}

// Configuration for Argon2id hashing.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
)

// Argon2id derives digests with Argon2id over an installation-wide salt.
type Argon2id struct {
	salt []byte
}

func NewArgon2id(salt []byte) *Argon2id {
	s := make([]byte, len(salt))
	copy(s, salt)
	return &Argon2id{salt: s}
}

// Hash returns a PHC-format string: $argon2id$v=19$m=X,t=Y,p=Z$salt$hash
func (h *Argon2id) Hash(plaintext string) string {
	key := argon2.IDKey([]byte(plaintext), h.salt, iterations, memory, parallelism, keyLength)
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(h.salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

func (h *Argon2id) Verify(plaintext, digest string) bool {
	return constantTimeEqual(h.Hash(plaintext), digest)
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
