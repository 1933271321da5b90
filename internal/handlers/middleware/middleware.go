package middleware

import (
	"time"

	adminController "shiftwatch/internal/controllers/admin"
	"shiftwatch/internal/logger"

	"github.com/gofiber/fiber/v2"
)

// AdminHeader carries the admin password on guarded requests.
const AdminHeader = "X-Admin-Password"

type Middleware struct {
	admin *adminController.AdminController
	log   logger.Logger
}

func New(admin *adminController.AdminController) Middleware {
	log := logger.New("middleware")
	if !admin.Enabled() {
		log.Warn("admin_password_hash is empty, mutating routes are unguarded")
	}
	return Middleware{admin: admin, log: log}
}

// RequireAdmin rejects requests whose AdminHeader does not verify. It lets
// everything through when no admin hash is configured.
func (m Middleware) RequireAdmin(c *fiber.Ctx) error {
	if !m.admin.Enabled() {
		return c.Next()
	}

	if !m.admin.Verify(c.Get(AdminHeader)) {
		m.log.Function("RequireAdmin").Warn("rejected admin request", "method", c.Method(), "path", c.Path())
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "admin password required"})
	}

	return c.Next()
}

func (m Middleware) LogRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	m.log.Function("LogRequests").Debug("request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
	)
	return err
}
