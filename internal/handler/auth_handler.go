package handler

import (
	"strings"

	"github.com/shefospecial/victoriasystem/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth service.AuthService
}

func NewAuthHandler(auth service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, 400, "Invalid JSON")
	}

	token, admin, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		return fail(c, 401, err.Error())
	}
	return ok(c, fiber.Map{"token": token, "admin": admin})
}

func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return fail(c, 401, "Missing or malformed token")
	}

	admin, err := h.auth.Verify(parts[1])
	if err != nil {
		return fail(c, 401, err.Error())
	}
	return ok(c, fiber.Map{"admin": admin})
}
