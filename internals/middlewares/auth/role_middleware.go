package auth

import (
	"github.com/gofiber/fiber/v2"
)

// OnlyRoles gates a route group to the given roles.
func OnlyRoles(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if _, ok := allowed[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "Access denied")
		}
		return c.Next()
	}
}

func OnlyInstructor() fiber.Handler { return OnlyRoles("instructor", "admin") }
func OnlyStudent() fiber.Handler    { return OnlyRoles("student") }
func OnlyAdmin() fiber.Handler      { return OnlyRoles("admin") }
