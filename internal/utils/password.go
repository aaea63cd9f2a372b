package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes an account password with bcrypt. A cost outside
// the range bcrypt supports falls back to the library default so a
// misconfigured BCRYPT_COST cannot weaken or break registration.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a stored bcrypt hash against a candidate
// password in constant time.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
