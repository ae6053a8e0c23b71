package auth

import (
	"testing"
	"time"

	"provest/config"
)

func testConfig() *config.JWTConfig {
	return &config.JWTConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "provest-test",
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateAccessToken(cfg, 42, "ada@example.com", true)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "ada@example.com" || !claims.IsAdmin {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateAccessToken(cfg, 42, "ada@example.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	other := *cfg
	other.AccessSecret = "different-secret"
	if _, err := ParseAccessToken(&other, token); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestParseAccessTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseAccessToken(testConfig(), "not.a.token"); err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateRefreshToken(cfg, 42)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	userID, err := ParseRefreshToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseRefreshToken: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestRefreshTokenNotValidAsAccessToken(t *testing.T) {
	cfg := testConfig()
	refresh, err := GenerateRefreshToken(cfg, 42)
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}
	if _, err := ParseAccessToken(cfg, refresh); err != ErrInvalidToken {
		t.Errorf("access parse of refresh token: err = %v, want ErrInvalidToken", err)
	}
}
