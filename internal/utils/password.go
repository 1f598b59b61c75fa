package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a staff password at the configured cost before
// it is stored on the users row.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword checks a login attempt against the stored hash.  It returns
// plain false on any mismatch so callers cannot distinguish a bad password
// from a corrupt hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
