package store

import (
	"context"

	"github.com/kispace/kispace-server/models"
)

// UserRepository is the persistence contract for user accounts.
//
// Uniqueness of username and email is enforced by database constraints, not
// by application-level pre-checks: a benign race between two concurrent
// registrations resolves with exactly one CreateUser succeeding and the
// other returning [ErrUsernameAlreadyExists].
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)

	// UpdateUser applies a partial profile update: nil fields are left
	// untouched. Returns the canonical post-update record.
	UpdateUser(ctx context.Context, id int64, update models.UpdateProfileRequest) (models.User, error)

	// UpdatePassword replaces the stored password hash for the given user.
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// ItemRepository is the persistence contract for the example resource.
type ItemRepository interface {
	CreateItem(ctx context.Context, name string) (models.Item, error)
	FindItemByID(ctx context.Context, id int64) (models.Item, error)
}
