package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/kaan/markbook/internal/app/models"
)

func newTestJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   "test-secret",
		SessionExp:  exp,
		TokenIssuer: "markbook-test",
	})
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	token, expiresIn, err := svc.GenerateSessionToken(models.RoleAdmin, 42)
	if err != nil {
		t.Fatal(err)
	}
	if expiresIn != 3600 {
		t.Errorf("expiresIn = %d, want 3600", expiresIn)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Role != models.RoleAdmin {
		t.Errorf("role = %s, want ADMIN", claims.Role)
	}
	if claims.UserID != 42 {
		t.Errorf("userID = %d, want 42", claims.UserID)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, _, err := newTestJWTService(time.Hour).GenerateSessionToken(models.RoleStudent, 7)
	if err != nil {
		t.Fatal(err)
	}

	other := NewJWTService(JWTConfig{
		SecretKey:   "different-secret",
		SessionExp:  time.Hour,
		TokenIssuer: "markbook-test",
	})
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("token signed with another secret must not validate")
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)

	token, _, err := svc.GenerateSessionToken(models.RoleStudent, 7)
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.ValidateToken(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("err = %v, want ErrExpiredToken", err)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	if _, err := svc.ValidateToken("not.a.token"); err == nil {
		t.Fatal("garbage token must not validate")
	}
	if _, err := svc.ValidateToken(""); err == nil {
		t.Fatal("empty token must not validate")
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"bearer prefix", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"raw token", "abc.def.ghi", "abc.def.ghi", false},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("token = %q, want %q", got, tt.want)
			}
		})
	}
}
