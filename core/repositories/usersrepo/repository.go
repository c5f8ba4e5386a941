package usersrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/dev2ever/userservice/core/scaffolding/results"
	"github.com/dev2ever/userservice/sdk/logger"
)

// Set of error values for CRUD operations on the user resource. Stores
// translate their driver failures into these before they reach the
// repository.
var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("username or email already exists")
)

// Messages surfaced to clients. Raw storage detail never appears here.
const (
	msgDuplicate      = "Username or email already exists."
	msgInternalSave   = "Internal error saving user."
	msgInternalUpdate = "Internal error updating user."
	msgInternalDelete = "Internal error deleting user."
)

// Storer defines the data storage interface for User. Mutating methods run
// inside a transaction scope owned by the store and report absence and
// uniqueness conflicts through ErrNotFound and ErrDuplicate; any other error
// is an unclassified infrastructure fault.
type Storer interface {
	Insert(ctx context.Context, input CreateUser) (User, error)
	GetByID(ctx context.Context, userID int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, userID int64, input UpdateUser) (User, error)
	Delete(ctx context.Context, userID int64) error
}

// Repository provides access to user storage. Mutating operations classify
// storage failures into the business error taxonomy and never let a raw
// fault escape; read operations are failure-transparent and report absence
// with ErrNotFound.
type Repository struct {
	log    *logger.Logger
	storer Storer
}

// NewRepository creates a new User repository.
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
	}
}

// Save persists a new user and returns it with the store-assigned id.
// Uniqueness conflicts come back as DUPLICATE_RESOURCE without telling the
// caller which field collided (the store does not disambiguate reliably).
func (r *Repository) Save(ctx context.Context, input CreateUser) results.OperationResult[User] {
	user, err := r.storer.Insert(ctx, input)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return results.Error[User](results.DuplicateResource, msgDuplicate)
		}
		r.log.ErrorContext(ctx, "save user", "err", err, "username", input.Username)
		return results.Error[User](results.InternalServerError, msgInternalSave)
	}

	return results.Success(user)
}

// UpdateUserFields replaces all mutable fields of the user identified by
// userID with the patch and returns the updated entity.
func (r *Repository) UpdateUserFields(ctx context.Context, userID int64, patch UpdateUser) results.OperationResult[User] {
	user, err := r.storer.Update(ctx, userID, patch)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return results.Error[User](results.NotFound, fmt.Sprintf("User with id %d not found.", userID))
		case errors.Is(err, ErrDuplicate):
			return results.Error[User](results.DuplicateResource, msgDuplicate)
		}
		r.log.ErrorContext(ctx, "update user", "err", err, "user_id", userID)
		return results.Error[User](results.InternalServerError, msgInternalUpdate)
	}

	return results.Success(user)
}

// DeleteByID removes the user identified by userID.
func (r *Repository) DeleteByID(ctx context.Context, userID int64) results.OperationResult[results.Void] {
	if err := r.storer.Delete(ctx, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return results.Error[results.Void](results.NotFound, fmt.Sprintf("User with id %d not found.", userID))
		}
		r.log.ErrorContext(ctx, "delete user", "err", err, "user_id", userID)
		return results.Error[results.Void](results.InternalServerError, msgInternalDelete)
	}

	return results.SuccessVoid()
}

// FindByID returns the user with the given id, or ErrNotFound. Unlike the
// mutating operations, reads do not classify infrastructure faults; they
// propagate to the caller unwrapped in any business taxonomy.
func (r *Repository) FindByID(ctx context.Context, userID int64) (User, error) {
	user, err := r.storer.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("user repository get by id: %w", err)
	}
	return user, nil
}

// FindByUsername returns the user with the given username, or ErrNotFound.
func (r *Repository) FindByUsername(ctx context.Context, username string) (User, error) {
	user, err := r.storer.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("user repository get by username: %w", err)
	}
	return user, nil
}

// FindByEmail returns the user with the given email, or ErrNotFound.
func (r *Repository) FindByEmail(ctx context.Context, email string) (User, error) {
	user, err := r.storer.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("user repository get by email: %w", err)
	}
	return user, nil
}

// FindAll returns all users.
func (r *Repository) FindAll(ctx context.Context) ([]User, error) {
	users, err := r.storer.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("user repository list: %w", err)
	}
	return users, nil
}
