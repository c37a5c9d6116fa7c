package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GetUserIDFromToken reads the user id set by the auth middleware.
// 401 when not logged in, 400 when the claim is malformed.
func GetUserIDFromToken(c *fiber.Ctx) (int, error) {
	v := c.Locals("user_id")
	if v == nil {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "Not logged in")
	}

	switch t := v.(type) {
	case int:
		if t <= 0 {
			return 0, fiber.NewError(fiber.StatusUnauthorized, "Not logged in")
		}
		return t, nil
	case float64:
		if t <= 0 {
			return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid user id in token")
		}
		return int(t), nil
	case string:
		s := strings.TrimSpace(t)
		id, err := strconv.Atoi(s)
		if err != nil || id <= 0 {
			return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid user id in token")
		}
		return id, nil
	default:
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid user id in token")
	}
}

// GetRoleFromToken reads the role claim set by the auth middleware.
func GetRoleFromToken(c *fiber.Ctx) string {
	if v, ok := c.Locals("role").(string); ok {
		return v
	}
	return ""
}
