package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"docvault/internal/model"
	repoMocks "docvault/internal/repository/mocks"
)

const testSecret = "unit-test-secret"

func testUser(t *testing.T, password, role string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{
		ID:           "user-id",
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path round trip", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		user := testUser(t, "secret123", model.RoleAdmin)
		mRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)

		svc := NewAuthService(mRepo, testSecret, time.Hour)
		token, got, err := svc.Login(ctx, user.Email, "secret123")

		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		require.NotEmpty(t, token)

		// The minted token must verify back to the same identity.
		ident, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, ident.UserID)
		assert.Equal(t, model.RoleAdmin, ident.Role)
		assert.True(t, ident.IsAdmin())
	})

	t.Run("wrong password", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		user := testUser(t, "secret123", model.RoleUser)
		mRepo.On("FindByEmail", ctx, user.Email).Return(user, nil)

		_, _, err := NewAuthService(mRepo, testSecret, time.Hour).Login(ctx, user.Email, "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email is indistinguishable", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, sql.ErrNoRows)

		_, _, err := NewAuthService(mRepo, testSecret, time.Hour).Login(ctx, "nobody@example.com", "whatever")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty credentials", func(t *testing.T) {
		_, _, err := NewAuthService(nil, testSecret, time.Hour).Login(ctx, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_Verify(t *testing.T) {
	svc := NewAuthService(nil, testSecret, time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user-id", "role": model.RoleUser,
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := other.SignedString([]byte("different-secret"))
		require.NoError(t, err)

		_, verr := svc.Verify(signed)
		assert.ErrorIs(t, verr, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user-id", "role": model.RoleUser,
			"exp": time.Now().Add(-time.Minute).Unix(),
		})
		signed, err := expired.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, verr := svc.Verify(signed)
		assert.ErrorIs(t, verr, ErrInvalidToken)
	})

	t.Run("unexpected algorithm rejected", func(t *testing.T) {
		none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
			"sub": "user-id", "role": model.RoleAdmin,
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, verr := svc.Verify(signed)
		assert.ErrorIs(t, verr, ErrInvalidToken)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		bad := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "user-id", "role": "superadmin",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := bad.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, verr := svc.Verify(signed)
		assert.ErrorIs(t, verr, ErrInvalidToken)
	})
}
