package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"jbh_backend/internals/configs"
)

// Webhook intake is called by the room provider, not a logged-in user.
var skipPaths = map[string]struct{}{
	"/api/webhook/videosdk": {},
}

// AuthMiddleware verifies the bearer token and puts user_id (int) and role
// into locals. Issuing/refreshing tokens is the auth service's job, not ours.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secret := configs.JWTSecret
		if secret == "" {
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Unexpected signing method")
			}
			return []byte(secret), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - token parse error")
		}

		userID, ok := claims["userId"].(float64)
		if !ok || userID <= 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing userId claim")
		}
		c.Locals("user_id", int(userID))

		if role, ok := claims["role"].(string); ok {
			c.Locals("role", role)
		}

		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	h := c.Get("Authorization")
	if h == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Missing Authorization header")
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Malformed Authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}
