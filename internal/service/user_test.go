package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"docvault/internal/model"
	"docvault/internal/repository"
	repoMocks "docvault/internal/repository/mocks"
)

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	valid := CreateUserInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "secret123",
		Role:     model.RoleUser,
	}

	t.Run("happy path hashes the password", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			if u.Email != valid.Email || u.Role != model.RoleUser || u.ID == "" {
				return false
			}
			// Stored credential must verify against the plaintext but never equal it.
			return u.PasswordHash != valid.Password &&
				bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(valid.Password)) == nil
		})).Return(&model.User{ID: "gen-id", Email: valid.Email}, nil)

		user, err := NewUserService(mRepo).Create(ctx, valid)

		assert.NoError(t, err)
		assert.Equal(t, "gen-id", user.ID)
		mRepo.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		in := valid
		in.Email = ""
		_, err := NewUserService(nil).Create(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown role", func(t *testing.T) {
		in := valid
		in.Role = "superadmin"
		_, err := NewUserService(nil).Create(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicateEmail)

		_, err := NewUserService(mRepo).Create(ctx, valid)

		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("password is re-hashed when provided", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		pw := "newpassword"

		mRepo.On("Update", ctx, "user-id", mock.MatchedBy(func(p repository.UserPatch) bool {
			return p.PasswordHash != nil &&
				bcrypt.CompareHashAndPassword([]byte(*p.PasswordHash), []byte(pw)) == nil
		})).Return(&model.User{ID: "user-id"}, nil)

		_, err := NewUserService(mRepo).Update(ctx, "user-id", UpdateUserInput{Password: &pw})

		assert.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	t.Run("role change", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		role := model.RoleAdmin

		mRepo.On("Update", ctx, "user-id", repository.UserPatch{Role: &role}).
			Return(&model.User{ID: "user-id", Role: role}, nil)

		u, err := NewUserService(mRepo).Update(ctx, "user-id", UpdateUserInput{Role: &role})

		assert.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, u.Role)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		role := "root"
		_, err := NewUserService(nil).Update(ctx, "user-id", UpdateUserInput{Role: &role})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		name := "New Name"
		mRepo.On("Update", ctx, "missing", mock.Anything).Return(nil, sql.ErrNoRows)

		_, err := NewUserService(mRepo).Update(ctx, "missing", UpdateUserInput{Name: &name})

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("email collision maps to conflict", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		email := "taken@example.com"
		mRepo.On("Update", ctx, "user-id", mock.Anything).Return(nil, repository.ErrDuplicateEmail)

		_, err := NewUserService(mRepo).Update(ctx, "user-id", UpdateUserInput{Email: &email})

		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByID", ctx, "other-id").Return(&model.User{ID: "other-id"}, nil)
		mRepo.On("Delete", ctx, "other-id").Return(nil)

		err := NewUserService(mRepo).Delete(ctx, "other-id", "admin-id")

		assert.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	t.Run("self delete rejected before any lookup", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)

		err := NewUserService(mRepo).Delete(ctx, "admin-id", "admin-id")

		assert.ErrorIs(t, err, ErrSelfDelete)
		mRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		err := NewUserService(mRepo).Delete(ctx, "missing", "admin-id")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockUserRepository)
	mRepo.On("List", ctx).Return([]model.User{{ID: "1"}, {ID: "2"}}, nil)

	users, err := NewUserService(mRepo).List(ctx)

	assert.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserService_ListError(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockUserRepository)
	mRepo.On("List", ctx).Return(nil, errors.New("db fail"))

	_, err := NewUserService(mRepo).List(ctx)

	assert.Error(t, err)
}
