package auth

import (
	"testing"
	"time"
)

func TestGenerateAndParseJWT(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateJWT(secret, "u1", "user@example.com", "Pat", "buyer", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	claims, err := ParseJWT(secret, token)
	if err != nil {
		t.Fatalf("ParseJWT failed: %v", err)
	}
	if claims.UID != "u1" || claims.Email != "user@example.com" || claims.DisplayName != "Pat" || claims.Role != "buyer" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Issuer != "procurehub" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret-a", "u1", "user@example.com", "", "viewer", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}
	if _, err := ParseJWT("secret-b", token); err == nil {
		t.Error("ParseJWT accepted token signed with different secret")
	}
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT("secret", "u1", "user@example.com", "", "viewer", time.Millisecond)
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := ParseJWT("secret", token); err == nil {
		t.Error("ParseJWT accepted expired token")
	}
}

func TestParseJWTGarbage(t *testing.T) {
	if _, err := ParseJWT("secret", "not-a-token"); err == nil {
		t.Error("ParseJWT accepted garbage")
	}
}
