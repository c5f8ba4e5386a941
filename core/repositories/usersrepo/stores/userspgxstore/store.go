// Package userspgxstore implements user storage against PostgreSQL via pgx.
//
// Uniqueness is enforced by the users table constraints at statement
// execution inside the transaction, not by pre-checking: concurrent inserts
// with colliding usernames or emails are resolved by the database, so there
// is no check-then-act window.
package userspgxstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dev2ever/userservice/core/repositories/usersrepo"
	"github.com/dev2ever/userservice/infrastructure/postgresdb"
	"github.com/dev2ever/userservice/sdk/logger"
)

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

// Insert creates a new user and returns it with the assigned id.
func (s *Store) Insert(ctx context.Context, input usersrepo.CreateUser) (usersrepo.User, error) {
	query := `INSERT INTO users (username, email, password, full_name)
		VALUES (@username, @email, @password, @full_name)
		RETURNING user_id, username, email, password, full_name`

	args := pgx.NamedArgs{
		"username":  input.Username,
		"email":     input.Email,
		"password":  input.Password,
		"full_name": input.FullName,
	}

	var record usersrepo.User
	err := postgresdb.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args)
		if err != nil {
			return err
		}

		record, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
		return err
	})
	if err != nil {
		return usersrepo.User{}, translateMutationError(err)
	}

	return record, nil
}

// Update replaces all mutable fields of the user and returns the updated
// row. The single UPDATE keeps the replace atomic under concurrent writers.
func (s *Store) Update(ctx context.Context, userID int64, input usersrepo.UpdateUser) (usersrepo.User, error) {
	query := `UPDATE users
		SET username = @username, email = @email, password = @password, full_name = @full_name
		WHERE user_id = @user_id
		RETURNING user_id, username, email, password, full_name`

	args := pgx.NamedArgs{
		"user_id":   userID,
		"username":  input.Username,
		"email":     input.Email,
		"password":  input.Password,
		"full_name": input.FullName,
	}

	var record usersrepo.User
	err := postgresdb.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args)
		if err != nil {
			return err
		}

		record, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
		return err
	})
	if err != nil {
		return usersrepo.User{}, translateMutationError(err)
	}

	return record, nil
}

// Delete removes the user. Reports usersrepo.ErrNotFound when no row matched.
func (s *Store) Delete(ctx context.Context, userID int64) error {
	query := `DELETE FROM users WHERE user_id = @user_id`

	args := pgx.NamedArgs{
		"user_id": userID,
	}

	return postgresdb.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, query, args)
		if err != nil {
			return postgresdb.HandlePgError(err)
		}

		if result.RowsAffected() == 0 {
			return usersrepo.ErrNotFound
		}

		return nil
	})
}

// GetByID retrieves a single user by id.
func (s *Store) GetByID(ctx context.Context, userID int64) (usersrepo.User, error) {
	query := `SELECT user_id, username, email, password, full_name FROM users WHERE user_id = @user_id`

	return s.getOne(ctx, query, pgx.NamedArgs{"user_id": userID})
}

// GetByUsername retrieves a single user by username.
func (s *Store) GetByUsername(ctx context.Context, username string) (usersrepo.User, error) {
	query := `SELECT user_id, username, email, password, full_name FROM users WHERE username = @username`

	return s.getOne(ctx, query, pgx.NamedArgs{"username": username})
}

// GetByEmail retrieves a single user by email.
func (s *Store) GetByEmail(ctx context.Context, email string) (usersrepo.User, error) {
	query := `SELECT user_id, username, email, password, full_name FROM users WHERE email = @email`

	return s.getOne(ctx, query, pgx.NamedArgs{"email": email})
}

// List retrieves all users.
func (s *Store) List(ctx context.Context) ([]usersrepo.User, error) {
	query := `SELECT user_id, username, email, password, full_name FROM users ORDER BY user_id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		return nil, postgresdb.HandlePgError(err)
	}

	return records, nil
}

func (s *Store) getOne(ctx context.Context, query string, args pgx.NamedArgs) (usersrepo.User, error) {
	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}

	record, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return usersrepo.User{}, usersrepo.ErrNotFound
		}
		return usersrepo.User{}, postgresdb.HandlePgError(err)
	}

	return record, nil
}

// translateMutationError maps driver failures onto the repository sentinels.
// Anything unrecognized flows through as an infrastructure fault.
func translateMutationError(err error) error {
	err = postgresdb.HandlePgError(err)
	switch {
	case errors.Is(err, postgresdb.ErrDBDuplicatedEntry):
		return fmt.Errorf("%w: %w", usersrepo.ErrDuplicate, err)
	case errors.Is(err, pgx.ErrNoRows):
		return usersrepo.ErrNotFound
	}
	return err
}
