package security

import (
	"github.com/matthewhartstonge/argon2"
)

// PasswordHasher hashes and verifies passwords with argon2id.
type PasswordHasher struct {
	config argon2.Config
}

// NewPasswordHasher creates a PasswordHasher with the given argon2 configuration.
func NewPasswordHasher(config argon2.Config) *PasswordHasher {
	return &PasswordHasher{config: config}
}

// DefaultPasswordHasher uses the library's recommended argon2id parameters.
func DefaultPasswordHasher() *PasswordHasher {
	return NewPasswordHasher(argon2.DefaultConfig())
}

// LightPasswordHasher trades strength for speed. Only for tests and the
// in-memory development backend.
func LightPasswordHasher() *PasswordHasher {
	cfg := argon2.DefaultConfig()
	cfg.TimeCost = 1
	cfg.MemoryCost = 8 * 1024

	return NewPasswordHasher(cfg)
}

// Hash returns the encoded argon2 hash of the password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	encoded, err := h.config.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// Verify reports whether the password matches the encoded hash.
func (h *PasswordHasher) Verify(password, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}

// HashPassword hashes a password with the default parameters.
func HashPassword(password string) (string, error) {
	return DefaultPasswordHasher().Hash(password)
}

// VerifyPassword checks a password against an encoded hash.
func VerifyPassword(password, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
