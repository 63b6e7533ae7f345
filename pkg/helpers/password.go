package helpers

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for new hashes.
const PasswordCost = bcrypt.DefaultCost

// a valid hash of an unguessable value; compared against when the account
// does not exist so unknown emails cost the same as wrong passwords.
var decoyHash, _ = bcrypt.GenerateFromPassword([]byte("decoy-password-never-issued"), PasswordCost)

// HashPassword hashes plain with bcrypt. Inputs over 72 bytes are rejected by bcrypt.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// CompareHashAndPassword reports whether plain matches hash.
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// BurnPasswordCompare runs one bcrypt comparison and discards the result.
func BurnPasswordCompare(plain string) {
	_ = bcrypt.CompareHashAndPassword(decoyHash, []byte(plain))
}
