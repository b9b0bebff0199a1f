package handler

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"docvault/internal/http/middleware"
	"docvault/internal/model"
	"docvault/internal/service"
)

// AuthHandler serves login, logout and session introspection.
type AuthHandler struct {
	auth     service.AuthService
	tokenTTL time.Duration
	validate *validator.Validate
}

// NewAuthHandler constructs a new AuthHandler. tokenTTL controls the session
// cookie lifetime and must match the TTL of the minted tokens.
func NewAuthHandler(auth service.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		tokenTTL: tokenTTL,
		validate: validator.New(),
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User     userResponse `json:"user"`
	Redirect string       `json:"redirect"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Login checks credentials and establishes the session cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "email and password are required")
	}

	token, user, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return writeServiceError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Expires:  time.Now().Add(h.tokenTTL),
		Path:     "/",
	})

	redirect := "/"
	if user.Role == model.RoleAdmin {
		redirect = "/admin"
	}
	return c.JSON(loginResponse{User: toUserResponse(user), Redirect: redirect})
}

// Logout clears the session cookie. Always succeeds, even without a session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
	})
	return c.JSON(fiber.Map{"status": "logged out"})
}

// Me returns the identity behind the current session.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	ident := middleware.IdentityFromCtx(c)
	if ident == nil {
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	}
	return c.JSON(userResponse{
		ID:    ident.UserID,
		Name:  ident.Name,
		Email: ident.Email,
		Role:  ident.Role,
	})
}
