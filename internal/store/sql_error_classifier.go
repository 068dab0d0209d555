package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrorClassification tells withRetry whether a failed statement is worth
// another attempt.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

func (c ErrorClassification) String() string {
	if c == Retryable {
		return "retryable"
	}
	return "non-retryable"
}

type postgresClassifier struct{}

// NewPostgresErrorClassifier retries connection loss, serialization
// failures, deadlocks and "cannot connect now". Constraint violations and
// everything else fail immediately.
func NewPostgresErrorClassifier() ErrorClassificator {
	return postgresClassifier{}
}

func (postgresClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return NonRetryable
	}

	switch pgErr.Code {
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.CannotConnectNow:
		return Retryable
	}
	return NonRetryable
}

type sqliteClassifier struct{}

// NewSQLiteErrorClassifier retries SQLITE_BUSY and SQLITE_LOCKED, which
// surface when another connection holds the write lock past the busy
// timeout.
func NewSQLiteErrorClassifier() ErrorClassificator {
	return sqliteClassifier{}
}

func (sqliteClassifier) Classify(err error) ErrorClassification {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return NonRetryable
	}

	switch sqliteErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Retryable
	}
	return NonRetryable
}
