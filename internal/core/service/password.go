package service

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a one-way bcrypt hash with a random salt at the
// default cost (10). The plaintext is never persisted.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored hash. A wrong
// password is a plain false, never an error.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
