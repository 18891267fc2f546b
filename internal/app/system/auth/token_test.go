package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("a-test-secret-that-is-long-enough-1234", time.Hour)

	tok, err := m.Issue("65f0c0ffee0000000000abcd")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	sub, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if sub != "65f0c0ffee0000000000abcd" {
		t.Errorf("subject = %q", sub)
	}
}

func TestTokenManager_DefaultTTL(t *testing.T) {
	m := NewTokenManager("secret", 0)
	if m.TTL() != DefaultTokenTTL {
		t.Errorf("TTL = %v, want %v", m.TTL(), DefaultTokenTTL)
	}
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	a := NewTokenManager("secret-a", time.Hour)
	b := NewTokenManager("secret-b", time.Hour)

	tok, _ := a.Issue("user-1")
	if _, err := b.Verify(tok); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }
	tok, _ := m.Issue("user-1")

	m.now = time.Now
	if _, err := m.Verify(tok); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenManager_RejectsTampered(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	tok, _ := m.Issue("user-1")
	parts := strings.Split(tok, ".")
	parts[2] = strings.Repeat("A", len(parts[2]))
	if _, err := m.Verify(strings.Join(parts, ".")); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenManager_RejectsNoneAlg(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := m.Verify(raw); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenManager_RejectsMissingSubject(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, _ := tok.SignedString([]byte("secret"))
	if _, err := m.Verify(raw); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}
