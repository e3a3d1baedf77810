package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by admin console access tokens.
type Claims struct {
	UserID      uuid.UUID `json:"-"`
	Email       string    `json:"email"`
	IsStaff     bool      `json:"staff"`
	IsSuperuser bool      `json:"superuser"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating access tokens.
type TokenService interface {
	// GenerateAccessToken issues a signed token for the given claims and returns its expiry.
	GenerateAccessToken(claims Claims) (token string, expiresAt time.Time, err error)

	// ValidateToken parses and verifies a token string.
	ValidateToken(tokenString string) (*Claims, error)
}
