package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kispace/kispace-server/internal/logger"
	"github.com/kispace/kispace-server/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles user account creation, lookup, and mutation against the
// "users" table and works with both supported drivers through the
// database handle's statement builder.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields.
//
// Error handling:
//   - unique-constraint violation → [ErrUsernameAlreadyExists] or
//     [ErrEmailAlreadyExists] depending on the conflicting column.
//   - Any other driver-level error → wrapped in [ErrScanningRow].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := insertUserQuery(r.db.Builder, user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := scanUser(row, &created); err != nil {
		if mapped := mapUserConstraintError(err); mapped != nil {
			return models.User{}, mapped
		}
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return created, nil
}

// FindUserByUsername retrieves the user record with the given username,
// or [ErrUserNotFound] when no such account exists.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUserBy(ctx, "username", username)
}

// FindUserByEmail retrieves the user record owning the given email,
// or [ErrUserNotFound] when no such account exists.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUserBy(ctx, "email", email)
}

// FindUserByID retrieves the user record with the given id,
// or [ErrUserNotFound] when no such account exists.
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.findUserBy(ctx, "id", id)
}

func (r *userRepository) findUserBy(ctx context.Context, column string, value any) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := selectUserQuery(r.db.Builder, column, value)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findUserBy").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := scanUser(row, &found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "*userRepository.findUserBy").Str("column", column).Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// UpdateUser applies a partial profile update and returns the canonical
// post-update record.
//
// Error handling:
//   - no fields supplied → [ErrEmptyUpdate].
//   - email unique violation → [ErrEmailAlreadyExists].
//   - no matching row → [ErrUserNotFound].
func (r *userRepository) UpdateUser(ctx context.Context, id int64, update models.UpdateProfileRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := updateUserQuery(r.db.Builder, id, update)
	if err != nil {
		if errors.Is(err, ErrEmptyUpdate) {
			return models.User{}, err
		}
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := scanUser(row, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		if mapped := mapUserConstraintError(err); mapped != nil {
			return models.User{}, mapped
		}
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return updated, nil
}

// UpdatePassword replaces the stored password hash of the given user.
// Returns [ErrUserNotFound] when the id matches no record.
func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	query, args, err := updatePasswordQuery(r.db.Builder, id, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdatePassword").Msg("error updating password")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// scanUser reads one row in userColumns order into dst.
func scanUser(row *sql.Row, dst *models.User) error {
	return row.Scan(
		&dst.ID,
		&dst.Username,
		&dst.Email,
		&dst.PasswordHash,
		&dst.Name,
		&dst.Remark,
		&dst.Role,
		&dst.Status,
		&dst.CreatedAt,
	)
}
