package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"docvault/internal/http/middleware"
	"docvault/internal/service"
)

// Services bundles the application services the HTTP surface depends on.
type Services struct {
	Auth      service.AuthService
	Documents service.DocumentService
	Users     service.UserService
	Stats     service.StatsService
	TokenTTL  time.Duration
}

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
//
// Route groups:
// - public: health probes, API docs, login
// - authenticated: session introspection, document browsing and download
// - admin: uploads, document/user mutation, stats
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services) {
	authH := NewAuthHandler(svc.Auth, svc.TokenTTL)
	docH := NewDocumentHandler(svc.Documents)
	userH := NewUserHandler(svc.Users)
	statsH := NewStatsHandler(svc.Stats)

	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoint: checks DB connectivity only
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	})

	// Simple liveness probe
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	app.Post("/auth/login", authH.Login)
	app.Post("/auth/logout", authH.Logout)

	authed := app.Group("/", middleware.RequireAuth(svc.Auth))
	authed.Get("/auth/me", authH.Me)
	authed.Get("/documents", docH.List)
	authed.Get("/documents/:id", docH.Get)

	admin := authed.Group("/", middleware.RequireAdmin())
	admin.Post("/documents", docH.Upload)
	admin.Patch("/documents/:id", docH.Update)
	admin.Delete("/documents/:id", docH.Delete)

	admin.Get("/users", userH.List)
	admin.Post("/users", userH.Create)
	admin.Patch("/users/:id", userH.Update)
	admin.Delete("/users/:id", userH.Delete)

	admin.Get("/stats", statsH.Overview)
}
