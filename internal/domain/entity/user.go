// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single registered account.
type User struct {
	ID           uuid.UUID // The unique identifier for the user, assigned by the directory at creation.
	Email        string    // The user's login identifier. Unique across all records.
	Name         string    // The user's display name.
	PasswordHash string    // The bcrypt hash of the user's password. Never serialized outward.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
