package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService defines the interface for generating and validating the JWT
// access tokens that represent a browser session. The watch sync key path
// deliberately bypasses this service.
type TokenService interface {
	// GenerateAccessToken creates a signed access token for the given user.
	GenerateAccessToken(userID uuid.UUID) (string, error)

	// ValidateToken checks a token string and returns its parsed form.
	ValidateToken(tokenString string) (*jwt.Token, error)

	// AccessTokenDuration returns the configured access token lifetime.
	AccessTokenDuration() time.Duration
}
