package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"docvault/internal/model"
	"docvault/internal/repository"
)

// Identity is the authenticated caller resolved from a session token.
type Identity struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// TokenVerifier resolves a raw session token to an identity. The auth
// middleware depends on this interface only, never on the full AuthService.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

// AuthService implements credential verification and session token issuance.
type AuthService interface {
	TokenVerifier

	// Login checks the credentials and returns a signed session token plus
	// the matched user. Unknown email and wrong password are indistinguishable.
	Login(ctx context.Context, email, password string) (string, *model.User, error)
}

type authService struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
}

// NewAuthService constructs a new AuthService signing HS256 tokens.
func NewAuthService(users repository.UserRepository, jwtSecret string, ttl time.Duration) AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &authService{users: users, secret: []byte(jwtSecret), ttl: ttl}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.mintToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) mintToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a session token, returning the embedded identity.
func (s *authService) Verify(token string) (*Identity, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}

	id, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if id == "" || !model.ValidRole(role) {
		return nil, ErrInvalidToken
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	return &Identity{UserID: id, Name: name, Email: email, Role: role}, nil
}
