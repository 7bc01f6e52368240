package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Identity read back from locals set by the auth middleware.
// Every authorization-sensitive handler goes through these two.

func GetUserIDFromLocals(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals("user_id").(string)
	if !ok || strings.TrimSpace(id) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing user identity")
	}
	return id, nil
}

func GetRoleFromLocals(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals("userRole").(string)
	if !ok || strings.TrimSpace(role) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - missing role information")
	}
	return role, nil
}
