package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// CreateUserInput carries a new account request. Password is plaintext here
// and hashed before it ever reaches the repository.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput is a partial account update; nil fields are left unchanged.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

// UserService defines the account lifecycle use cases. All operations are
// admin-only; the role check happens at the HTTP boundary.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*model.User, error)
	// Delete removes an account. callerID is the authenticated admin's own id;
	// deleting it is rejected.
	Delete(ctx context.Context, id, callerID string) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService constructs a new UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func hashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	if !model.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: unknown role", ErrInvalidInput)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: email already in use", ErrConflict)
		}
		return nil, err
	}
	return created, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

func (s *userService) Update(ctx context.Context, id string, in UpdateUserInput) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if in.Role != nil && !model.ValidRole(*in.Role) {
		return nil, fmt.Errorf("%w: unknown role", ErrInvalidInput)
	}
	if in.Email != nil && *in.Email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", ErrInvalidInput)
	}

	patch := repository.UserPatch{
		Name:  in.Name,
		Email: in.Email,
		Role:  in.Role,
	}
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, fmt.Errorf("%w: email already in use", ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id, callerID string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	// Admins cannot remove their own account.
	if id == callerID {
		return ErrSelfDelete
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}
