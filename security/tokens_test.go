package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedTokenExpiring(t *testing.T, at time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(at),
	})
	signed, err := token.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestPeekTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, err := PeekTokenExpiry(signedTokenExpiring(t, exp))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(exp) {
		t.Errorf("expiry = %v, want %v", got, exp)
	}
}

func TestPeekTokenExpiryGarbage(t *testing.T) {
	if _, err := PeekTokenExpiry("not-a-token"); err == nil {
		t.Error("expected error for garbage token")
	}
}

func TestTokenExpiresWithin(t *testing.T) {
	soon := signedTokenExpiring(t, time.Now().Add(30*time.Second))
	if !TokenExpiresWithin(soon, time.Minute) {
		t.Error("token expiring in 30s should be within a 1m window")
	}
	if TokenExpiresWithin(soon, time.Second) {
		t.Error("token expiring in 30s should not be within a 1s window")
	}
	if !TokenExpiresWithin("garbage", time.Minute) {
		t.Error("unparsable token should count as expired")
	}
}

func TestGenerateSessionIDShape(t *testing.T) {
	id, err := GenerateSessionID()
	if err != nil {
		t.Fatal(err)
	}
	if len(id) != 32 {
		t.Errorf("len = %d, want 32", len(id))
	}
	other, _ := GenerateSessionID()
	if id == other {
		t.Error("two generated ids collided")
	}
}

func TestCipherRoundTrip(t *testing.T) {
	cipher, err := NewXChaCha20Poly1305CipherBase64([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatal(err)
	}
	enc, err := cipher.EncryptEncode([]byte("session-id"))
	if err != nil {
		t.Fatal(err)
	}
	dec, err := cipher.DecodeDecrypt(enc)
	if err != nil {
		t.Fatal(err)
	}
	if string(dec) != "session-id" {
		t.Errorf("round trip = %q", dec)
	}
}
