package service

import (
	"github.com/google/uuid"
)

// TokenService defines the interface for issuing and verifying bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed token binding the given subject.
	Issue(userID uuid.UUID) (string, error)

	// Verify validates a token string and returns the bound subject.
	Verify(tokenString string) (uuid.UUID, error)
}
