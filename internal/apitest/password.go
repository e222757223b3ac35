package apitest

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// passwordHasher derives Argon2id keys for account passwords. The fake
// backend keeps the cost low since tests create many accounts.
type passwordHasher struct {
	time    uint32
	memory  uint32
	threads uint8
	saltLen int
	keyLen  uint32
}

func newPasswordHasher() passwordHasher {
	return passwordHasher{time: 1, memory: 8 * 1024, threads: 1, saltLen: 16, keyLen: 32}
}

// passwordHash is what the store keeps instead of the password.
type passwordHash struct {
	salt []byte
	key  []byte
}

func (h passwordHasher) hash(password string) (passwordHash, error) {
	salt := make([]byte, h.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return passwordHash{}, fmt.Errorf("generating salt: %w", err)
	}
	return passwordHash{salt: salt, key: h.derive(password, salt)}, nil
}

// verify compares in constant time.
func (h passwordHasher) verify(password string, stored passwordHash) bool {
	if len(stored.salt) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(stored.key, h.derive(password, stored.salt)) == 1
}

func (h passwordHasher) derive(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, h.time, h.memory, h.threads, h.keyLen)
}
