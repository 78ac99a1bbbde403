package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password with a per-call random salt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares plaintext against a stored hash in constant
// effort; never compare hashes directly.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
