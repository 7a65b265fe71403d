// Package password is the credential codec: a one-way, salted, deliberately
// slow transform of plaintext passwords, and its verification counterpart.
package password

import "golang.org/x/crypto/bcrypt"

// Hash derives a bcrypt digest from plaintext. The salt is embedded in the
// digest, so two hashes of the same plaintext differ yet both verify.
func Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext corresponds to digest. A mismatch returns
// false, never an error.
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
