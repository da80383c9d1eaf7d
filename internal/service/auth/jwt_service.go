// Package auth verifies the access tokens issued by the identity service and
// can mint equivalent tokens for local tooling and tests.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tango-api/internal/domain"
)

// JWTService defines operations for JWT access tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the user and role.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, userID uuid.UUID, role domain.Role) (string, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns the claims containing user information if the token is valid,
	// or an error if validation fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the verified content of an access token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid,omitempty"`

	// Role is the account role, guardian or learner.
	Role domain.Role `json:"role,omitempty"`

	// TokenType indicates the purpose of the token. Only "access" tokens are accepted.
	TokenType string `json:"type,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
