package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"docvault/internal/model"
	"docvault/internal/service"
)

const (
	// AuthCookieName is the session cookie holding the signed token.
	AuthCookieName = "auth-token"
	// IdentityLocalKey is the key under which the verified identity is stored
	// in Fiber locals.
	IdentityLocalKey = "identity"
)

// RequireAuth verifies the caller's session token and stores the resulting
// identity in context locals. The token is read from the auth-token cookie,
// with an Authorization: Bearer header accepted as a fallback for non-browser
// clients.
func RequireAuth(verifier service.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(AuthCookieName)
		if token == "" {
			token = bearerToken(c.Get(fiber.HeaderAuthorization))
		}
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}

		ident, err := verifier.Verify(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired session")
		}

		c.Locals(IdentityLocalKey, ident)
		return c.Next()
	}
}

// RequireAdmin rejects callers whose verified identity is not an admin. It
// must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident := IdentityFromCtx(c)
		if ident == nil || ident.Role != model.RoleAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}

// IdentityFromCtx returns the identity stored by RequireAuth, or nil.
func IdentityFromCtx(c *fiber.Ctx) *service.Identity {
	ident, _ := c.Locals(IdentityLocalKey).(*service.Identity)
	return ident
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
