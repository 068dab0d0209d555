package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/models"
)

// userRepository is the database/sql implementation of [UserRepository].
// It works against PostgreSQL and SQLite; the dialect-specific parts live
// in [DB].
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
	logger.Debug().Str("dialect", string(db.dialect)).Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user models.User
		role string
	)
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &role, &user.Disabled, &user.CreatedAt); err != nil {
		return models.User{}, err
	}
	user.Role = models.Role(role)
	return user, nil
}

// CreateUser persists a new user record and returns it with the
// server-assigned ID.
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.db.builder, user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.User
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		created, err = scanUser(r.db.QueryRowContext(ctx, query, args...))
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		if isUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: unexpected DB error: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// FindUserByID retrieves the user with the given id.
//
// Error handling:
//   - no matching row → [ErrNoUserWasFound].
//   - any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	query, args, err := buildSelectUserByIDQuery(r.db.builder, id)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findOne(ctx, "*userRepository.FindUserByID", query, args)
}

// FindUserByEmail retrieves the user whose email equals email exactly.
// Errors follow [userRepository.FindUserByID].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	query, args, err := buildSelectUserByEmailQuery(r.db.builder, email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findOne(ctx, "*userRepository.FindUserByEmail", query, args)
}

func (r *userRepository) findOne(ctx context.Context, funcName, query string, args []any) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	err := r.db.withRetry(ctx, func(ctx context.Context) error {
		var err error
		found, err = scanUser(r.db.QueryRowContext(ctx, query, args...))
		return err
	})
	if err != nil {
		if isNoRows(err) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", funcName).Msg("error selecting user")
		return models.User{}, fmt.Errorf("%w: unexpected DB error: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// ListUsers returns up to req.Limit users ordered by id, skipping the first
// req.Offset.
func (r *userRepository) ListUsers(ctx context.Context, req models.ListRequest) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(r.db.builder, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var users []models.User
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		users = make([]models.User, 0, req.Limit)
		for rows.Next() {
			user, err := scanUser(rows)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			users = append(users, user)
		}
		return rows.Err()
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error listing users")
		return nil, fmt.Errorf("%w: unexpected DB error: %w", ErrExecutingQuery, err)
	}

	return users, nil
}

// UpdateUser applies changes to the user with the given id in a single
// UPDATE and returns the updated record.
//
// Error handling:
//   - no column to set → [ErrNothingToUpdate].
//   - no matching row → [ErrNoUserWasFound].
//   - unique violation on email → [ErrEmailAlreadyExists].
func (r *userRepository) UpdateUser(ctx context.Context, id int64, changes models.UserChanges) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(r.db.builder, id, changes)
	if err != nil {
		return models.User{}, err
	}

	var updated models.User
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		updated, err = scanUser(r.db.QueryRowContext(ctx, query, args...))
		return err
	})
	if err != nil {
		switch {
		case isNoRows(err):
			return models.User{}, ErrNoUserWasFound
		case isUniqueViolation(err):
			return models.User{}, ErrEmailAlreadyExists
		}
		log.Err(err).Str("func", "*userRepository.UpdateUser").Msg("error updating user")
		return models.User{}, fmt.Errorf("%w: unexpected DB error: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

// DeleteUser removes the user with the given id. Deleting an absent user
// returns [ErrNoUserWasFound].
func (r *userRepository) DeleteUser(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteUserQuery(r.db.builder, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var affected int64
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error deleting user")
		return fmt.Errorf("%w: unexpected DB error: %w", ErrExecutingQuery, err)
	}

	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}
