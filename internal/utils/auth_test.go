package utils

import (
	"testing"

	"cafe-billing/config"
)

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Fatal("expected password to match")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("expected mismatch for wrong password")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig = &config.Config{Server: config.ServerConfig{JWTSecret: "test-secret", JWTExpirationHours: 1}}

	token, err := GenerateToken(12, "customer", 3, 12)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 12 || claims.Role != "customer" || claims.OwnerID != 3 || claims.CustomerID != 12 {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	config.AppConfig.Server.JWTSecret = "rotated"
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected token signed with old secret to be rejected")
	}
}

func TestTokenRequiresSecret(t *testing.T) {
	config.AppConfig = &config.Config{}
	if _, err := GenerateToken(1, "admin", 1, 0); err == nil {
		t.Fatal("expected error without secret")
	}
}
