package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when no user matches, so unknown emails
// take as long to reject as wrong passwords
var dummyHash []byte

func init() {
	var err error
	dummyHash, err = bcrypt.GenerateFromPassword([]byte("workout-planner-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("security: failed to build dummy password hash: %v", err))
	}
}

// HashPassword returns a bcrypt hash of password
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches hash. An empty hash is
// checked against a dummy value and never matches.
func CheckPassword(hash, password string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
