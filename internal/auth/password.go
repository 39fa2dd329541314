package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	autherrors "go-payroll/internal/auth/errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	// bcrypt rejects longer input
	maxPasswordBytes = 72
)

// hashPassword returns a bcrypt hash. bcrypt carries its own salt, so the salt
// column stays empty for new hashes.
func hashPassword(password string) (salt, hash string, err error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return "", string(b), nil
}

func isBcryptHash(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}

// verifyPassword checks password against a stored credential. legacy is true
// when the credential still uses hex sha256(salt+password) and should be
// rehashed.
func verifyPassword(cred *Credential, password string) (ok, legacy bool) {
	if isBcryptHash(cred.PwdHash) {
		return bcrypt.CompareHashAndPassword([]byte(cred.PwdHash), []byte(password)) == nil, false
	}

	sum := sha256.Sum256([]byte(cred.Salt + password))
	got := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(got), []byte(strings.ToLower(cred.PwdHash))) == 1, true
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return autherrors.ErrPasswordTooShort
	}
	if len(password) > maxPasswordBytes {
		return autherrors.ErrPasswordTooLong
	}
	return nil
}
