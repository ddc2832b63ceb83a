package utils

import (
	"fmt"
	"time"

	"appointease/core/config"
	"appointease/core/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the JWT payload minted for access and refresh tokens.
type TokenClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email,omitempty"`
	Username string    `json:"username,omitempty"`
	Scope    string    `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateToken mints a signed JWT for the given scope. Access and refresh
// TTLs come from config.
func GenerateToken(userID uuid.UUID, email, username, scope string) (string, error) {
	cfg, ok := config.GetSafe()
	if !ok {
		return "", fmt.Errorf("config not initialized")
	}

	ttl := time.Duration(cfg.JWT.AccessTTLMinutes) * time.Minute
	if scope == constants.ScopeTokenRefresh {
		ttl = time.Duration(cfg.JWT.RefreshTTLMinutes) * time.Minute
	}

	now := time.Now()
	claims := TokenClaims{
		UserID:   userID,
		Email:    email,
		Username: username,
		Scope:    scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "appointease-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// ValidateAndParseToken verifies the signature and expiry and returns the
// claims.
func ValidateAndParseToken(tokenString string) (*TokenClaims, error) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, fmt.Errorf("config not initialized")
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// TokenRemainingTTL reports how long until the token expires, for blacklist
// entries that should evict themselves.
func TokenRemainingTTL(claims *TokenClaims) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}
	return time.Until(claims.ExpiresAt.Time)
}
