package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"docvault/internal/model"
	"docvault/internal/service"
)

func TestCreateUser(t *testing.T) {
	valid := fiber.Map{
		"name":     "New User",
		"email":    "new@example.com",
		"password": "secret123",
		"role":     model.RoleUser,
	}

	t.Run("happy path omits the password hash", func(t *testing.T) {
		app, svcs, _ := newTestApp(t)
		cookie := asAdmin(svcs)

		svcs.users.On("Create", mock.Anything, service.CreateUserInput{
			Name:     "New User",
			Email:    "new@example.com",
			Password: "secret123",
			Role:     model.RoleUser,
		}).Return(&model.User{
			ID: "new-id", Name: "New User", Email: "new@example.com",
			PasswordHash: "$2a$10$hash", Role: model.RoleUser,
		}, nil)

		req := jsonRequest("POST", "/users", valid)
		req.AddCookie(cookie)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var out map[string]any
		decodeBody(t, resp, &out)
		assert.Equal(t, "new-id", out["id"])
		assert.NotContains(t, out, "password_hash")
		assert.NotContains(t, out, "password")
	})

	t.Run("missing fields", func(t *testing.T) {
		app, svcs, _ := newTestApp(t)
		cookie := asAdmin(svcs)

		req := jsonRequest("POST", "/users", fiber.Map{"email": "new@example.com"})
		req.AddCookie(cookie)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		svcs.users.AssertNotCalled(t, "Create")
	})

	t.Run("duplicate email", func(t *testing.T) {
		app, svcs, _ := newTestApp(t)
		cookie := asAdmin(svcs)
		svcs.users.On("Create", mock.Anything, mock.Anything).
			Return(nil, service.ErrConflict)

		req := jsonRequest("POST", "/users", valid)
		req.AddCookie(cookie)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

		var out errorPayload
		decodeBody(t, resp, &out)
		assert.Equal(t, "CONFLICT", out.Error.Code)
	})
}

func TestListUsers(t *testing.T) {
	app, svcs, _ := newTestApp(t)
	cookie := asAdmin(svcs)

	svcs.users.On("List", mock.Anything).Return([]model.User{
		{ID: "1", Email: "a@example.com", PasswordHash: "hash-a", Role: model.RoleAdmin},
		{ID: "2", Email: "b@example.com", PasswordHash: "hash-b", Role: model.RoleUser},
	}, nil)

	req := httptest.NewRequest("GET", "/users", nil)
	req.AddCookie(cookie)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out []map[string]any
	decodeBody(t, resp, &out)
	assert.Len(t, out, 2)
	for _, u := range out {
		assert.NotContains(t, u, "password_hash")
	}
}

func TestUpdateUser(t *testing.T) {
	t.Run("role change", func(t *testing.T) {
		app, svcs, _ := newTestApp(t)
		cookie := asAdmin(svcs)
		id := uuid.NewString()

		svcs.users.On("Update", mock.Anything, id, mock.MatchedBy(func(in service.UpdateUserInput) bool {
			return in.Role != nil && *in.Role == model.RoleAdmin && in.Name == nil
		})).Return(&model.User{ID: id, Role: model.RoleAdmin}, nil)

		req := jsonRequest("PATCH", "/users/"+id, fiber.Map{"role": model.RoleAdmin})
		req.AddCookie(cookie)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		svcs.users.AssertExpectations(t)
	})

	t.Run("invalid email format", func(t *testing.T) {
		app, svcs, _ := newTestApp(t)
		cookie := asAdmin(svcs)
		id := uuid.NewString()

		req := jsonRequest("PATCH", "/users/"+id, fiber.Map{"email": "not-an-email"})
		req.AddCookie(cookie)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		svcs.users.AssertNotCalled(t, "Update")
	})

	t.Run("not found", func(t *testing.T) {
		app, svcs, _ := newTestApp(t)
		cookie := asAdmin(svcs)
		id := uuid.NewString()
		svcs.users.On("Update", mock.Anything, id, mock.Anything).
			Return(nil, service.ErrNotFound)

		req := jsonRequest("PATCH", "/users/"+id, fiber.Map{"name": "Renamed"})
		req.AddCookie(cookie)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("happy path passes the caller id", func(t *testing.T) {
		app, svcs, _ := newTestApp(t)
		cookie := asAdmin(svcs)
		id := uuid.NewString()
		svcs.users.On("Delete", mock.Anything, id, adminID).Return(nil)

		req := httptest.NewRequest("DELETE", "/users/"+id, nil)
		req.AddCookie(cookie)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		svcs.users.AssertExpectations(t)
	})

	t.Run("self delete rejected", func(t *testing.T) {
		app, svcs, _ := newTestApp(t)
		cookie := asAdmin(svcs)
		svcs.users.On("Delete", mock.Anything, adminID, adminID).
			Return(service.ErrSelfDelete)

		req := httptest.NewRequest("DELETE", "/users/"+adminID, nil)
		req.AddCookie(cookie)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var out errorPayload
		decodeBody(t, resp, &out)
		assert.Equal(t, "SELF_DELETE", out.Error.Code)
	})
}
