package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/mattn/go-sqlite3"
)

func TestPostgresErrorClassifier(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{"nil", nil, NonRetryable},
		{"plain error", errors.New("boom"), NonRetryable},
		{"connection failure", pgError(pgerrcode.ConnectionFailure), Retryable},
		{"serialization failure", pgError(pgerrcode.SerializationFailure), Retryable},
		{"deadlock", pgError(pgerrcode.DeadlockDetected), Retryable},
		{"cannot connect now", pgError(pgerrcode.CannotConnectNow), Retryable},
		{"wrapped deadlock", fmt.Errorf("exec: %w", pgError(pgerrcode.DeadlockDetected)), Retryable},
		{"unique violation", pgError(pgerrcode.UniqueViolation), NonRetryable},
		{"syntax error", pgError(pgerrcode.SyntaxError), NonRetryable},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, NonRetryable},
	}

	c := NewPostgresErrorClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSQLiteErrorClassifier(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{"nil", nil, NonRetryable},
		{"busy", sqlite3.Error{Code: sqlite3.ErrBusy}, Retryable},
		{"locked", sqlite3.Error{Code: sqlite3.ErrLocked}, Retryable},
		{"wrapped busy", fmt.Errorf("query: %w", sqlite3.Error{Code: sqlite3.ErrBusy}), Retryable},
		{"constraint", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, NonRetryable},
		{"postgres deadlock", pgError(pgerrcode.DeadlockDetected), NonRetryable},
	}

	c := NewSQLiteErrorClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewDB_ClassifierPerDialect(t *testing.T) {
	if _, ok := newDB(nil, DialectPostgres, nil).errorClassificator.(postgresClassifier); !ok {
		t.Error("expected postgres classifier")
	}
	if _, ok := newDB(nil, DialectSQLite, nil).errorClassificator.(sqliteClassifier); !ok {
		t.Error("expected sqlite classifier")
	}
}

func TestFindUserByEmail_SQLiteRetriesBusy(t *testing.T) {
	repo, mock, db := newTestUserRepo(t, DialectSQLite)
	defer db.Close()

	now := time.Now().UTC()
	query := regexp.QuoteMeta("FROM users WHERE email = ?")
	mock.ExpectQuery(query).
		WithArgs("alice@example.com").
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrBusy})
	mock.ExpectQuery(query).
		WithArgs("alice@example.com").
		WillReturnRows(aliceRow(now))

	found, err := repo.FindUserByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Email != "alice@example.com" {
		t.Errorf("unexpected user %+v", found)
	}
	if err = mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
