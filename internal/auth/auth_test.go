package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hr-records-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret: "0123456789abcdef0123456789abcdef",
		Issuer:    "hr-records-api",
		Audience:  "hr-records-api",
		TokenTTL:  24 * time.Hour,
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager(testConfig())

	token, exp, err := m.Generate("1001", "ana@example.com", "Ana Gómez", "Employee")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if time.Until(exp) < 23*time.Hour {
		t.Errorf("Expected expiry about 24h ahead, got %v", exp)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Subject != "1001" {
		t.Errorf("Expected subject 1001, got %s", claims.Subject)
	}
	if claims.Role != "Employee" {
		t.Errorf("Expected role Employee, got %s", claims.Role)
	}
	if claims.Name != "Ana Gómez" {
		t.Errorf("Expected name, got %s", claims.Name)
	}
	if claims.ID == "" {
		t.Error("Expected a token id")
	}
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager(testConfig())
	token, _, _ := m.Generate("1", "a@example.com", "A", "Admin")

	otherCfg := testConfig()
	otherCfg.JWTSecret = "ffffffffffffffffffffffffffffffff"
	otherSecret := NewTokenManager(otherCfg)

	otherCfg = testConfig()
	otherCfg.Audience = "someone-else"
	otherAudience := NewTokenManager(otherCfg)

	expired := NewTokenManager(testConfig())
	expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	expiredToken, _, _ := expired.Generate("1", "a@example.com", "A", "Admin")

	tests := []struct {
		name  string
		m     *TokenManager
		token string
	}{
		{"garbage", m, "not.a.token"},
		{"wrong secret", otherSecret, token},
		{"wrong audience", otherAudience, token},
		{"expired", m, expiredToken},
		{"tampered", m, token[:len(token)-2] + "xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.m.Parse(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("1001")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "1001" || !strings.HasPrefix(hash, "$2") {
		t.Errorf("Expected a bcrypt hash, got %s", hash)
	}
	if !h.Compare(hash, "1001") {
		t.Error("Expected matching password to compare true")
	}
	if h.Compare(hash, "1002") {
		t.Error("Expected wrong password to compare false")
	}

	// Salted: the same password hashes differently each time
	again, _ := h.Hash("1001")
	if again == hash {
		t.Error("Expected different hashes for the same password")
	}
}
