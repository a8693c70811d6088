// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the read operations login schemes need, plus the
// attribute update used by TOTP enrollment.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername retrieves a single user by login name.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByPhone retrieves a single user by E.164 phone number.
	FindByPhone(ctx context.Context, phone string) (*entity.User, error)

	// SetAttribute stores one extension attribute for the user.
	SetAttribute(ctx context.Context, id uuid.UUID, key, value string) error
}
