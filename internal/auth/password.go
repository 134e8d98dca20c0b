package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// fallbackHash is a valid bcrypt hash of an unguessable throwaway value.
// Comparing against it when an email has no account keeps login timing
// uniform between "no such user" and "wrong password".
const fallbackHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword returns the bcrypt hash of a plaintext password.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash
// using a constant-time comparison.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// BurnPasswordCheck performs a bcrypt comparison against a fixed hash and
// discards the result. Called on lookups that found no user.
func BurnPasswordCheck(plain string) {
	_ = bcrypt.CompareHashAndPassword([]byte(fallbackHash), []byte(plain))
}
