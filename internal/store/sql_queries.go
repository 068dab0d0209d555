package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-user-accounts/models"
)

// userColumns is the column order every user query selects and scans.
var userColumns = []string{"id", "email", "password_hash", "role", "disabled", "created_at"}

var returningUser = "RETURNING " + strings.Join(userColumns, ", ")

func buildInsertUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert(models.User{}.TableName()).
		Columns("email", "password_hash", "role", "disabled", "created_at").
		Values(user.Email, user.PasswordHash, string(user.Role), user.Disabled, user.CreatedAt).
		Suffix(returningUser).
		ToSql()
}

func buildSelectUserByIDQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildSelectUserByEmailQuery(b sq.StatementBuilderType, email string) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"email": email}).
		ToSql()
}

func buildListUsersQuery(b sq.StatementBuilderType, req models.ListRequest) (string, []any, error) {
	return b.Select(userColumns...).
		From(models.User{}.TableName()).
		OrderBy("id").
		Limit(req.Limit).
		Offset(req.Offset).
		ToSql()
}

// buildUpdateUserQuery sets only the non-nil columns of changes. A new
// password hash is written by the same statement as the other columns.
func buildUpdateUserQuery(b sq.StatementBuilderType, id int64, changes models.UserChanges) (string, []any, error) {
	if changes.Empty() {
		return "", nil, ErrNothingToUpdate
	}

	update := b.Update(models.User{}.TableName())
	if changes.Email != nil {
		update = update.Set("email", *changes.Email)
	}
	if changes.PasswordHash != nil {
		update = update.Set("password_hash", *changes.PasswordHash)
	}
	if changes.Disabled != nil {
		update = update.Set("disabled", *changes.Disabled)
	}

	return update.
		Where(sq.Eq{"id": id}).
		Suffix(returningUser).
		ToSql()
}

func buildDeleteUserQuery(b sq.StatementBuilderType, id int64) (string, []any, error) {
	return b.Delete(models.User{}.TableName()).
		Where(sq.Eq{"id": id}).
		ToSql()
}
