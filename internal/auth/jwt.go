package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	jwtSecret []byte
	accessTTL = 15 * time.Minute
)

// Configure sets the signing secret and access token lifetime.
// Must be called once at startup before any token is issued.
func Configure(secret string, ttl time.Duration) error {
	if secret == "" {
		return errors.New("JWT_SECRET not set")
	}
	jwtSecret = []byte(secret)
	if ttl > 0 {
		accessTTL = ttl
	}
	return nil
}

// Claims carried by the access token. Role is duplicated here for cheap
// middleware guards; GET /auth/session re-resolves it from the profiles
// table, which stays authoritative.
type Claims struct {
	ProfileID uint   `json:"profileId"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAccessToken issues a short-lived HS256 JWT.
func GenerateAccessToken(profileID uint, role string) (string, error) {
	if len(jwtSecret) == 0 {
		return "", errors.New("auth not configured")
	}
	now := time.Now()
	claims := &Claims{
		ProfileID: profileID,
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(profileID),
			ExpiresAt: jwt.NewNumericDate(now.Add(accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseAndValidate checks signature and expiry and returns the claims.
func ParseAndValidate(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("could not extract claims")
	}
	return claims, nil
}
