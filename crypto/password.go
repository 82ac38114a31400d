package crypto

import (
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// PasswordMaxBytes is the maximum password length bcrypt accepts.
// Longer passwords are truncated before hashing and before verification.
const PasswordMaxBytes = 72

// truncatePassword cuts the password to the first PasswordMaxBytes bytes.
// The cut can land inside a multi-byte UTF-8 character; the partial trailing
// sequence is dropped so GenerateHash and CheckPassword always see
// byte-identical input. Diverging here would make verification of a correct
// long password fail.
func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) <= PasswordMaxBytes {
		return b
	}
	b = b[:PasswordMaxBytes]
	for i := 0; i < utf8.UTFMax-1 && len(b) > 0; i++ {
		r, size := utf8.DecodeLastRune(b)
		if r != utf8.RuneError || size > 1 {
			break
		}
		b = b[:len(b)-1]
	}
	return b
}

// CheckPassword compares a bcrypt hashed password with its possible plaintext
// equivalent. Returns false for malformed hashes as well as mismatches, so
// callers cannot distinguish the two cases.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(password))
	return err == nil
}

// GenerateHash creates a bcrypt hash from a password. The digest encodes its
// own salt and cost, no external salt storage is needed. A cost of 0 selects
// the bcrypt default.
func GenerateHash(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashedBytes, err := bcrypt.GenerateFromPassword(truncatePassword(password), cost)
	return string(hashedBytes), err
}
