package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rohitpatre/raceday/internal/pkg/session"
)

// Session key marking an authenticated admin.
const AdminAuthKey = "admin_authenticated"

// RequireAdmin ensures a logged-in admin web session; redirects to /login
// if missing.
func RequireAdmin(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	if authed, ok := sess.Get(AdminAuthKey).(bool); !ok || !authed {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAdminAPI ensures an admin session for API routes and returns JSON
// 401 instead of a redirect.
func RequireAdminAPI(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		if authed, ok := sess.Get(AdminAuthKey).(bool); ok && authed {
			return c.Next()
		}
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "unauthorized",
		"message": "admin login required",
	})
}
