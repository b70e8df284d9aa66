package repository

import (
	"context"

	"healthboard/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository resolves and stores account identities.
type UserRepository interface {
	// Create stores a new user. Fails when the email is already registered.
	Create(ctx context.Context, user *entity.User) error

	// FindByID returns the user with the given id, or nil when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail resolves a user by email, case-insensitively. Returns nil
	// when no user matches; the watch sync key path treats that as an
	// unknown API key.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
