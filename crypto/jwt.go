package crypto

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// MinKeyLength is the minimum required length for JWT signing keys.
	// 32 bytes (256 bits) is the minimum recommended length for HMAC-SHA256 keys
	// to provide sufficient security against brute force attacks.
	MinKeyLength = 32

	// JWT claim constants
	ClaimIssuedAt  = "iat"     // JWT Issued At claim key
	ClaimExpiresAt = "exp"     // JWT Expiration Time claim key
	ClaimUserID    = "user_id" // JWT User ID claim key
	ClaimEmail     = "email"   // JWT Email claim key
	ClaimRole      = "role"    // JWT Role claim key
)

var (
	// ErrJwtTokenExpired is returned when the token has expired
	ErrJwtTokenExpired = errors.New("token expired")
	// ErrJwtInvalidToken is returned when the token is invalid
	ErrJwtInvalidToken = errors.New("invalid token")
	// ErrJwtInvalidSigningMethod is returned when the signing method is not HS256
	// or the signature does not verify
	ErrJwtInvalidSigningMethod = errors.New("unexpected signing method")
	// ErrJwtInvalidSecretLength is returned for invalid secret lengths
	ErrJwtInvalidSecretLength = errors.New("invalid secret length")
	// ErrInvalidClaimFormat is returned when a required claim is missing or malformed
	ErrInvalidClaimFormat = errors.New("invalid claim format")
)

// ParseJwt verifies and parses a JWT and returns its claims.
// Only HS256 is accepted; a token carrying any other algorithm identifier is
// rejected before signature verification (downgrade attacks).
func ParseJwt(token string, verificationKey []byte) (jwt.MapClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))

	parsedToken, err := parser.Parse(token, func(t *jwt.Token) (any, error) {
		return verificationKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrJwtTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrJwtInvalidSigningMethod
		}
		return nil, fmt.Errorf("%w: %w", ErrJwtInvalidToken, err)
	}

	if claims, ok := parsedToken.Claims.(jwt.MapClaims); ok && parsedToken.Valid {
		return claims, nil
	}

	return nil, ErrJwtInvalidToken
}

// NewJwt generates a new JWT token with the provided claims.
// payload is jwt.MapClaims which is just map[string]any.
func NewJwt(payload jwt.MapClaims, signingKey []byte, duration time.Duration) (string, time.Time, error) {
	if len(signingKey) < MinKeyLength {
		return "", time.Time{}, ErrJwtInvalidSecretLength
	}

	// Set standard claims
	now := time.Now()
	expirationTime := now.Add(duration)
	payload[ClaimIssuedAt] = now.Unix()
	payload[ClaimExpiresAt] = expirationTime.Unix()

	// Create and sign the token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	tokenString, err := token.SignedString(signingKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expirationTime, nil
}

// SessionClaims is the verified content of a session token. The role is a
// snapshot taken at issuance; a role change after issuance is not visible
// here until the user logs in again and a fresh token is minted.
type SessionClaims struct {
	UserID int64
	Email  string
	Role   string
}

// NewJwtSessionToken mints a session token embedding the user's id, email and
// current role, signed with the server-held secret.
func NewJwtSessionToken(userID int64, email, role string, secret []byte, duration time.Duration) (string, time.Time, error) {
	claims := jwt.MapClaims{
		ClaimUserID: strconv.FormatInt(userID, 10),
		ClaimEmail:  email,
		ClaimRole:   role,
	}
	return NewJwt(claims, secret, duration)
}

// ParseJwtSessionToken verifies a session token and extracts its claims.
// Verification is a pure function of the token and the secret; it never
// consults storage.
func ParseJwtSessionToken(token string, secret []byte) (*SessionClaims, error) {
	claims, err := ParseJwt(token, secret)
	if err != nil {
		return nil, err
	}

	rawID, ok := claims[ClaimUserID].(string)
	if !ok || rawID == "" {
		return nil, fmt.Errorf("%w: missing user_id", ErrInvalidClaimFormat)
	}
	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: user_id not numeric", ErrInvalidClaimFormat)
	}

	email, ok := claims[ClaimEmail].(string)
	if !ok || email == "" {
		return nil, fmt.Errorf("%w: missing email", ErrInvalidClaimFormat)
	}

	role, ok := claims[ClaimRole].(string)
	if !ok || role == "" {
		return nil, fmt.Errorf("%w: missing role", ErrInvalidClaimFormat)
	}

	return &SessionClaims{UserID: userID, Email: email, Role: role}, nil
}
