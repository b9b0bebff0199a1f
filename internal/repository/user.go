package repository

import (
	"context"
	"errors"

	"docvault/internal/model"
)

// ErrDuplicateEmail is returned by Create/Update when the email unique
// constraint is violated. Implementations translate their driver-specific
// error into this sentinel so callers never inspect driver errors.
var ErrDuplicateEmail = errors.New("email already in use")

// UserRepository defines data access for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// FindByID returns a user by ID. Missing rows surface sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail returns a user by email. Missing rows surface sql.ErrNoRows.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// List returns all users ordered by creation time descending.
	List(ctx context.Context) ([]model.User, error)

	// Update applies the non-nil fields of patch to the row.
	Update(ctx context.Context, id string, patch UserPatch) (*model.User, error)

	// Delete removes a user by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error

	// Count returns the total number of user rows.
	Count(ctx context.Context) (int, error)
}

// UserPatch carries a partial account update. Nil pointers leave the
// corresponding column unchanged. PasswordHash must already be hashed.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *string
}
