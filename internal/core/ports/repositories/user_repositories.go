package repositories

import (
	"context"

	"github.com/Saymandev/Advanced-Poss-sub007/internal/core/domain"
)

// UserReader defines read operations for staff identities.
type UserReader interface {
	// FindUserByID retrieves a user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves an active user by username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// UserWriter defines write operations for staff identities.
type UserWriter interface {
	// SaveUser persists a new user. A duplicate username surfaces as
	// apperrors.ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
