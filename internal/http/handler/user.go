package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docvault/internal/http/middleware"
	"docvault/internal/service"
)

// UserHandler serves the admin user-management surface.
type UserHandler struct {
	users    service.UserService
	validate *validator.Validate
}

// NewUserHandler constructs a new UserHandler.
func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users, validate: validator.New()}
}

type createUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role"`
}

// Create registers a new account.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "name, email, password and role are required")
	}

	user, err := h.users.Create(c.UserContext(), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
}

// List returns every account, without password hashes.
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return writeServiceError(c, err)
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return c.JSON(out)
}

// Update applies a partial account update.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid field values")
	}

	user, err := h.users.Update(c.UserContext(), id, service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(toUserResponse(user))
}

// Delete removes an account. Admins cannot delete themselves.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}

	ident := middleware.IdentityFromCtx(c)
	callerID := ""
	if ident != nil {
		callerID = ident.UserID
	}

	if err := h.users.Delete(c.UserContext(), id, callerID); err != nil {
		return writeServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
