package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParseJWT(t *testing.T) {
	secret := "testsecret"
	token, err := GenerateJWT(secret, 42, "yunsu", "user", time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}
	claims, err := ParseJWT(secret, token)
	if err != nil {
		t.Fatalf("ParseJWT failed: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "yunsu" || claims.Role != "user" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, _ := GenerateJWT("secret-a", 1, "u", "user", time.Minute)
	if _, err := ParseJWT("secret-b", token); err == nil {
		t.Errorf("expected error for wrong secret")
	}
}

func TestParseJWT_Expired(t *testing.T) {
	token, _ := GenerateJWT("secret", 1, "u", "user", -time.Minute)
	if _, err := ParseJWT("secret", token); err == nil {
		t.Errorf("expected error for expired token")
	}
}

func TestParseJWT_Garbage(t *testing.T) {
	if _, err := ParseJWT("secret", "not.a.jwt"); err == nil {
		t.Errorf("expected error for malformed token")
	}
}
