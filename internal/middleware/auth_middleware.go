package middleware

import (
	"strings"

	"github.com/shefospecial/victoriasystem/internal/repository"
	"github.com/shefospecial/victoriasystem/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the Bearer token and loads the admin into the
// request context.
func RequireAuth(adminRepo repository.AdminRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid or expired token"})
		}

		admin, err := adminRepo.FindByID(claims.AdminID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Account not found"})
		}
		if !admin.IsActive {
			return c.Status(401).JSON(fiber.Map{"success": false, "error": "Account is disabled"})
		}

		c.Locals("admin_id", admin.ID.String())
		c.Locals("username", admin.Username)
		c.Locals("role", admin.Role)

		return c.Next()
	}
}

// RequireRole restricts a route to a single role.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, ok := c.Locals("role").(string)
		if !ok || current != role {
			return c.Status(403).JSON(fiber.Map{"success": false, "error": "Forbidden: requires '" + role + "' role"})
		}
		return c.Next()
	}
}
