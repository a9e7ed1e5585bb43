package auth

import (
	"testing"
	"time"

	"github.com/binduu04/fleet-management-assignment/internal/common/config"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	cfg := config.AuthConfig{
		Enabled:   true,
		JWTSecret: "test-secret",
		Issuer:    "fleet-management",
		Audience:  "fleet-management",
	}

	token, exp, err := GenerateAccessToken(cfg, "u-1", "technician", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if exp.Before(time.Now()) {
		t.Fatalf("expected exp in future")
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Subject != "u-1" {
		t.Fatalf("subject mismatch: %s", claims.Subject)
	}
	if claims.Role != "technician" {
		t.Fatalf("role mismatch: %s", claims.Role)
	}
}

func TestParseAccessTokenRejectsBadSecret(t *testing.T) {
	cfg := config.AuthConfig{JWTSecret: "secret-a", Issuer: "fleet-management"}
	token, _, err := GenerateAccessToken(cfg, "u-1", "user", time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	other := config.AuthConfig{JWTSecret: "secret-b", Issuer: "fleet-management"}
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatalf("expected signature verification failure")
	}

	wrongIss := config.AuthConfig{JWTSecret: "secret-a", Issuer: "someone-else"}
	if _, err := ParseAccessToken(wrongIss, token); err == nil {
		t.Fatalf("expected issuer mismatch failure")
	}
}

func TestBearerToken(t *testing.T) {
	if got := BearerToken("Bearer abc.def.ghi"); got != "abc.def.ghi" {
		t.Fatalf("unexpected token: %s", got)
	}
	if got := BearerToken("  bearer   xyz  "); got != "xyz" {
		t.Fatalf("unexpected token: %s", got)
	}
	if got := BearerToken("xyz"); got != "xyz" {
		t.Fatalf("unexpected token: %s", got)
	}
}
