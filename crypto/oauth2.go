package crypto

import (
	"crypto/sha256"
	"encoding/base64"
)

// PKCECodeChallengeMethod is the only challenge method supported.
const PKCECodeChallengeMethod = "S256"

// S256Challenge derives the PKCE code challenge from a code verifier
// as defined in RFC 7636.
func S256Challenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
