package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func ExtractBearerToken(header string) string {
	const prefix = "Bearer "
	prefixLen := len(prefix)
	if len(header) > prefixLen && header[:prefixLen] == prefix {
		return header[prefixLen:]
	}
	return ""
}

// GenerateSessionID generates 32 hex (0-9a-f) string from 16 random bytes
func GenerateSessionID() (string, error) {
	b := make([]byte, 16) // 128-bit random ID
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// PeekTokenExpiry reads the `exp` claim of a backend-issued JWT access token
// without verifying the signature. The gateway is not the token authority;
// it only needs to know whether a stored token is worth forwarding.
func PeekTokenExpiry(signedToken string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(signedToken, &claims); err != nil {
		return time.Time{}, fmt.Errorf("parse access token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("access token has no exp claim")
	}
	return claims.ExpiresAt.Time, nil
}

// TokenExpiresWithin reports whether the token expires inside the given window.
// Unparsable tokens count as expired.
func TokenExpiresWithin(signedToken string, window time.Duration) bool {
	exp, err := PeekTokenExpiry(signedToken)
	if err != nil {
		return true
	}
	return time.Until(exp) < window
}
