package authjwt

import (
	"time"

	"github.com/google/uuid"
)

// Claims is the validated identity carried by a bearer token.
type Claims struct {
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Provider defines the interface for JWT token operations.
type Provider interface {
	// GenerateToken creates a signed JWT token whose subject is userID.
	GenerateToken(userID uuid.UUID, ttl time.Duration) (string, error)

	// ValidateToken validates a JWT token and returns the claims if valid.
	ValidateToken(tokenString string) (*Claims, error)
}
