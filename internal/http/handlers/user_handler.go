package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopbook/internal/log"
	"shopbook/internal/services"
	"shopbook/internal/validate"
)

type UserHandler struct {
	Auth *services.AuthService
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "INVALID_NAME")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return badRequest(c, "INVALID_EMAIL")
	}
	if !validate.Password(req.Password) {
		return badRequest(c, "WEAK_PASSWORD")
	}

	u, err := h.Auth.Register(name, email, req.Password)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "user.register", map[string]any{"email": email})
	return c.Status(fiber.StatusCreated).JSON(u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "INVALID_BODY")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		applog.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "BAD_CREDENTIALS"})
	}

	token, u, err := h.Auth.Login(email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return fail(c, err)
	}
	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(fiber.Map{"token": token, "name": u.Name})
}
