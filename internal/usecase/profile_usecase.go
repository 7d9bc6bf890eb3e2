// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	// GetProfile retrieves a user by id. Callers must project out the
	// password hash before serializing the result.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
