package crypto

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestGenerateScopeToken(t *testing.T) {
	token, err := GenerateScopeToken(uuid.New(), "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateScopeToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateScopeToken() returned empty string")
	}
}

func TestValidateScopeTokenValid(t *testing.T) {
	secret := "test-secret"
	id := uuid.New()

	token, err := GenerateScopeToken(id, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateScopeToken() unexpected error: %v", err)
	}

	claims, err := ValidateScopeToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateScopeToken() unexpected error: %v", err)
	}
	if claims.ScopeID != id {
		t.Errorf("ValidateScopeToken() ScopeID = %s, want %s", claims.ScopeID, id)
	}
}

func TestValidateScopeTokenInvalid(t *testing.T) {
	_, err := ValidateScopeToken("not-a-valid-token", "test-secret")
	if err == nil {
		t.Error("ValidateScopeToken() expected error for invalid token")
	}
}

func TestValidateScopeTokenWrongSecret(t *testing.T) {
	token, err := GenerateScopeToken(uuid.New(), "correct-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateScopeToken() unexpected error: %v", err)
	}

	_, err = ValidateScopeToken(token, "wrong-secret")
	if err == nil {
		t.Error("ValidateScopeToken() expected error for wrong secret")
	}
}

func TestValidateScopeTokenExpired(t *testing.T) {
	token, err := GenerateScopeToken(uuid.New(), "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateScopeToken() unexpected error: %v", err)
	}

	_, err = ValidateScopeToken(token, "test-secret")
	if err == nil {
		t.Error("ValidateScopeToken() expected error for expired token")
	}
}

func TestValidateScopeTokenWrongAudience(t *testing.T) {
	secret := "test-secret"

	claims := ScopeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{"someone-else"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		ScopeID: uuid.New(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}

	_, err = ValidateScopeToken(tokenString, secret)
	if err == nil {
		t.Error("ValidateScopeToken() expected error for wrong audience")
	}
}

func TestValidateScopeTokenNilScope(t *testing.T) {
	secret := "test-secret"
	token, err := GenerateScopeToken(uuid.Nil, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateScopeToken() unexpected error: %v", err)
	}

	if _, err := ValidateScopeToken(token, secret); err == nil {
		t.Error("ValidateScopeToken() expected error for nil scope id")
	}
}
