package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/kispace/kispace-server/models"
)

// Column sets scanned by the repositories. Order matters: every SELECT and
// RETURNING clause lists columns in exactly this order.
var (
	userColumns = []string{"id", "username", "email", "password_hash", "name", "remark", "role", "status", "created_at"}
	itemColumns = []string{"id", "name"}
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

// insertUserQuery builds the INSERT for a new user record. The RETURNING
// clause hands back the canonical database representation, including the
// server-assigned id.
func insertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(user.TableName()).
		Columns("username", "email", "password_hash", "name", "remark", "role", "status", "created_at").
		Values(user.Username, user.Email, user.PasswordHash, user.Name, user.Remark, user.Role, user.Status, user.CreatedAt).
		Suffix(returning(userColumns)).
		ToSql()
}

// selectUserQuery builds a single-row user lookup by the given column.
func selectUserQuery(b sq.StatementBuilderType, column string, value any) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{column: value}).
		ToSql()
}

// updateUserQuery builds a partial profile UPDATE. Only non-nil fields of
// update contribute SET clauses; an update with no fields at all yields
// [ErrEmptyUpdate].
func updateUserQuery(b sq.StatementBuilderType, id int64, update models.UpdateProfileRequest) (string, []any, error) {
	if update.Empty() {
		return "", nil, ErrEmptyUpdate
	}

	qb := b.Update(models.User{}.TableName())
	if update.Email != nil {
		qb = qb.Set("email", *update.Email)
	}
	if update.Name != nil {
		qb = qb.Set("name", *update.Name)
	}

	return qb.Where(sq.Eq{"id": id}).
		Suffix(returning(userColumns)).
		ToSql()
}

// updatePasswordQuery builds the password-hash replacement UPDATE.
func updatePasswordQuery(b sq.StatementBuilderType, id int64, passwordHash string) (string, []any, error) {
	return b.Update(models.User{}.TableName()).
		Set("password_hash", passwordHash).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// insertItemQuery builds the INSERT for a new example item.
func insertItemQuery(b sq.StatementBuilderType, name string) (string, []any, error) {
	return b.Insert(models.Item{}.TableName()).
		Columns("name").
		Values(name).
		Suffix(returning(itemColumns)).
		ToSql()
}

// selectItemQuery builds a single-row item lookup by id.
func selectItemQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Select(itemColumns...).
		From(models.Item{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
}
