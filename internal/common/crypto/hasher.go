package crypto

import "golang.org/x/crypto/bcrypt"

// bcrypt keeps hashes salted and deliberately slow; stored hashes are never
// reversible to plaintext.
const bcryptCost = 12

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type BcryptHasher struct{}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare returns an error on mismatch and on a malformed stored hash; the
// latter is a programming-error condition, not a normal rejection.
func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
