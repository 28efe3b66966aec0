// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kispace/kispace-server/internal/logger"
	"github.com/kispace/kispace-server/models"
)

// newMockDB returns a DB wired to an sqlmock connection with dollar-style
// placeholders, mimicking the PostgreSQL backend.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return &DB{
		DB:      conn,
		Builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		Driver:  "pgx",
		logger:  logger.Nop(),
	}, mock
}

func driverValues(t *testing.T, args []any) []driver.Value {
	t.Helper()
	values := make([]driver.Value, 0, len(args))
	for _, arg := range args {
		values = append(values, arg)
	}
	return values
}

func userRow(u models.User) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns).
		AddRow(u.ID, u.Username, u.Email, u.PasswordHash, u.Name, u.Remark, u.Role, u.Status, u.CreatedAt)
}

var testUser = models.User{
	ID:           7,
	Username:     "alice",
	Email:        "alice@example.com",
	PasswordHash: "$2a$10$stub",
	Role:         models.RoleUser,
	Status:       models.StatusActive,
	CreatedAt:    time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
}

func TestUserRepository_CreateUser_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	input := testUser
	input.ID = 0

	query, args, err := insertUserQuery(db.Builder, input)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(driverValues(t, args)...).
		WillReturnRows(userRow(testUser))

	created, err := repo.CreateUser(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, testUser, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateUser_DuplicateUsername(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	query, _, err := insertUserQuery(db.Builder, testUser)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_username_key"})

	_, err = repo.CreateUser(context.Background(), testUser)
	assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
}

func TestUserRepository_CreateUser_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	query, _, err := insertUserQuery(db.Builder, testUser)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})

	_, err = repo.CreateUser(context.Background(), testUser)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestUserRepository_FindUserByUsername_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	query, args, err := selectUserQuery(db.Builder, "username", "alice")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(driverValues(t, args)...).
		WillReturnRows(userRow(testUser))

	found, err := repo.FindUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, testUser, found)
}

func TestUserRepository_FindUserByUsername_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	query, _, err := selectUserQuery(db.Builder, "username", "ghost")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err = repo.FindUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_FindUserByUsername_DriverError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	query, _, err := selectUserQuery(db.Builder, "username", "alice")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnError(errors.New("connection reset"))

	_, err = repo.FindUserByUsername(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrScanningRow)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_FindUserByEmail_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	query, args, err := selectUserQuery(db.Builder, "email", "alice@example.com")
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(driverValues(t, args)...).
		WillReturnRows(userRow(testUser))

	found, err := repo.FindUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, testUser, found)
}

func TestUserRepository_FindUserByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	query, _, err := selectUserQuery(db.Builder, "id", int64(99))
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnRows(sqlmock.NewRows(userColumns))

	_, err = repo.FindUserByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserRepository_UpdateUser_EmailOnly(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	email := "new@example.com"
	update := models.UpdateProfileRequest{Email: &email}

	query, args, err := updateUserQuery(db.Builder, testUser.ID, update)
	require.NoError(t, err)

	updated := testUser
	updated.Email = email
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(driverValues(t, args)...).
		WillReturnRows(userRow(updated))

	got, err := repo.UpdateUser(context.Background(), testUser.ID, update)
	require.NoError(t, err)
	assert.Equal(t, email, got.Email)
	assert.Equal(t, testUser.Name, got.Name, "omitted fields stay untouched")
}

func TestUserRepository_UpdateUser_Empty(t *testing.T) {
	db, _ := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	_, err := repo.UpdateUser(context.Background(), testUser.ID, models.UpdateProfileRequest{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)
}

func TestUserRepository_UpdateUser_DuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	email := "taken@example.com"
	update := models.UpdateProfileRequest{Email: &email}

	query, _, err := updateUserQuery(db.Builder, testUser.ID, update)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})

	_, err = repo.UpdateUser(context.Background(), testUser.ID, update)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestUserRepository_UpdatePassword_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	query, args, err := updatePasswordQuery(db.Builder, testUser.ID, "$2a$10$newhash")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(query)).
		WithArgs(driverValues(t, args)...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePassword(context.Background(), testUser.ID, "$2a$10$newhash"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdatePassword_DriverError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	query, _, err := updatePasswordQuery(db.Builder, testUser.ID, "$2a$10$newhash")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(query)).
		WillReturnError(errors.New("connection reset"))

	err = repo.UpdatePassword(context.Background(), testUser.ID, "$2a$10$newhash")
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestUserRepository_UpdatePassword_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, logger.Nop())

	query, _, err := updatePasswordQuery(db.Builder, int64(404), "$2a$10$newhash")
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(query)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdatePassword(context.Background(), 404, "$2a$10$newhash")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
