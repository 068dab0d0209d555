// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pgBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func Test_buildInsertUserQuery(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	user := models.User{Email: "alice@example.com", PasswordHash: "h", Role: models.RoleAdmin, CreatedAt: now}

	query, args, err := buildInsertUserQuery(pgBuilder, user)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO users (email,password_hash,role,disabled,created_at) VALUES ($1,$2,$3,$4,$5) "+
			"RETURNING id, email, password_hash, role, disabled, created_at",
		query)
	assert.Equal(t, []any{"alice@example.com", "h", "admin", false, now}, args)
}

func Test_buildSelectUserQueries(t *testing.T) {
	query, args, err := buildSelectUserByEmailQuery(pgBuilder, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, email, password_hash, role, disabled, created_at FROM users WHERE email = $1", query)
	assert.Equal(t, []any{"alice@example.com"}, args)

	query, args, err = buildSelectUserByIDQuery(pgBuilder, 7)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, email, password_hash, role, disabled, created_at FROM users WHERE id = $1", query)
	assert.Equal(t, []any{int64(7)}, args)
}

func Test_buildListUsersQuery(t *testing.T) {
	query, args, err := buildListUsersQuery(pgBuilder, models.ListRequest{Offset: 20, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, email, password_hash, role, disabled, created_at FROM users ORDER BY id LIMIT 10 OFFSET 20", query)
	assert.Empty(t, args)
}

func Test_buildUpdateUserQuery(t *testing.T) {
	email := "new@example.com"
	hash := "h2"
	disabled := false

	tests := []struct {
		name      string
		changes   models.UserChanges
		wantQuery string
		wantArgs  []any
		wantErr   error
	}{
		{
			name:    "empty",
			changes: models.UserChanges{},
			wantErr: ErrNothingToUpdate,
		},
		{
			name:      "email only",
			changes:   models.UserChanges{Email: &email},
			wantQuery: "UPDATE users SET email = $1 WHERE id = $2 RETURNING id, email, password_hash, role, disabled, created_at",
			wantArgs:  []any{email, int64(3)},
		},
		{
			name:      "all columns in one statement",
			changes:   models.UserChanges{Email: &email, PasswordHash: &hash, Disabled: &disabled},
			wantQuery: "UPDATE users SET email = $1, password_hash = $2, disabled = $3 WHERE id = $4 RETURNING id, email, password_hash, role, disabled, created_at",
			wantArgs:  []any{email, hash, false, int64(3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildUpdateUserQuery(pgBuilder, 3, tt.changes)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func Test_buildDeleteUserQuery_SQLitePlaceholders(t *testing.T) {
	query, args, err := buildDeleteUserQuery(sq.StatementBuilder.PlaceholderFormat(sq.Question), 5)
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM users WHERE id = ?", query)
	assert.Equal(t, []any{int64(5)}, args)
}
