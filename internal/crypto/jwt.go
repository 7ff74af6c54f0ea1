package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid or expired scope token")
)

const (
	tokenIssuer   = "portal"
	tokenAudience = "portal-shell"
)

// ScopeClaims identifies the browser scope a cookie belongs to.
type ScopeClaims struct {
	jwt.RegisteredClaims
	ScopeID uuid.UUID `json:"sid"`
}

// GenerateScopeToken creates a signed token binding a browser to its scope.
func GenerateScopeToken(scopeID uuid.UUID, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := ScopeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		ScopeID: scopeID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateScopeToken parses and validates a scope token, returning its claims.
func ValidateScopeToken(tokenString, secret string) (*ScopeClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ScopeClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*ScopeClaims)
	if !ok || !token.Valid || claims.ScopeID == uuid.Nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
