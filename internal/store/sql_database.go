// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/migrations"
)

// Dialect names the SQL backend behind a [DB]. The values double as goose
// dialect names.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// defaultRetryBase is the first backoff interval for retryable errors.
const defaultRetryBase = 50 * time.Millisecond

// DB wraps *sql.DB with the dialect-specific pieces the repositories need:
// a squirrel statement builder with the right placeholder format and an
// optional classifier for retryable errors.
type DB struct {
	*sql.DB
	dialect            Dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	retryBase          time.Duration
	logger             *logger.Logger
}

func newDB(conn *sql.DB, dialect Dialect, log *logger.Logger) *DB {
	db := &DB{
		DB:        conn,
		dialect:   dialect,
		retryBase: defaultRetryBase,
		logger:    log,
	}

	switch dialect {
	case DialectPostgres:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		db.errorClassificator = NewPostgresErrorClassifier()
	default:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
		db.errorClassificator = NewSQLiteErrorClassifier()
	}

	return db
}

// NewConnect opens the database named by cfg.DSN. postgres:// and
// postgresql:// URLs go through pgx; anything else is a SQLite file path
// (":memory:" included).
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	switch {
	case dsn == "":
		return nil, ErrUnsupportedDSN
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return NewConnectSQLite(ctx, cfg, log)
	}
}

// Dialect reports which backend db talks to.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the embedded migrations for db's dialect.
func (db *DB) Migrate() error {
	if err := migrations.Migrate(db.DB, string(db.dialect)); err != nil {
		return fmt.Errorf("error migrating %s database: %w", db.dialect, err)
	}
	return nil
}
