// Package service contains the business logic of the application: account
// registration and authentication, token issuance and resolution, profile
// management, admin bootstrapping, and the example items resource.
package service

import (
	"context"

	"github.com/kispace/kispace-server/models"
)

// AuthService covers the account and token lifecycle.
type AuthService interface {
	// Register creates a new active user account with the role "user".
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Authenticate verifies a username/password pair and returns the
	// matching account. Unknown usernames and wrong passwords are both
	// reported as ErrInvalidCredentials so that callers cannot distinguish
	// the two cases.
	Authenticate(ctx context.Context, username, password string) (models.User, error)

	// IssueTokenPair signs a fresh access/refresh token pair for the user.
	IssueTokenPair(ctx context.Context, user models.User) (models.TokenPair, error)

	// ResolveToken validates a raw JWT string and loads the account named
	// in its subject claim. Any validation failure is normalised to
	// ErrTokenIsExpiredOrInvalid.
	ResolveToken(ctx context.Context, tokenString string) (models.User, error)

	// BypassUser returns the account impersonated by the development
	// bypass token.
	BypassUser(ctx context.Context) (models.User, error)

	// UpdateProfile applies a partial profile update and returns the
	// post-update account record.
	UpdateProfile(ctx context.Context, userID int64, update models.UpdateProfileRequest) (models.User, error)

	// ChangePassword verifies the old password and replaces it with the
	// new one. A mismatched old password yields ErrWrongOldPassword.
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error

	// BootstrapAdmin ensures the default administrator account exists.
	// The call is idempotent.
	BootstrapAdmin(ctx context.Context) error
}

// ItemService covers the example items resource.
type ItemService interface {
	CreateItem(ctx context.Context, name string) (models.Item, error)
	GetItem(ctx context.Context, id int64) (models.Item, error)
}
