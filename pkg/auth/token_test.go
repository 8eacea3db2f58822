package auth

import (
	"testing"
	"time"

	"github.com/swiftcart/storefront-state/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "swiftcart-test",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseSessionToken(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	signed, err := MintSessionToken(cfg, time.Now(), "mary")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	claims, err := ParseSessionToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Username != "mary" {
		t.Fatalf("expected username mary, got %q", claims.Username)
	}
	if claims.ID == "" {
		t.Fatal("expected a jti")
	}
}

func TestMintRejectsEmptyUsername(t *testing.T) {
	t.Parallel()

	if _, err := MintSessionToken(testJWTConfig(), time.Now(), "  "); err == nil {
		t.Fatal("expected error for blank username")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	signed, err := MintSessionToken(cfg, time.Now(), "mary")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	other := cfg
	other.Secret = "different"
	if _, err := ParseSessionToken(other, signed); err == nil {
		t.Fatal("expected parse failure with wrong secret")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	signed, err := MintSessionToken(cfg, time.Now().Add(-2*time.Hour), "mary")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := ParseSessionToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
