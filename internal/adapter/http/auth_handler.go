package http

import (
	"github.com/gofiber/fiber/v2"
)

type signUpReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type signInReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) SignUp(c *fiber.Ctx) error {
	var req signUpReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	user, token, err := h.auth.SignUp(c.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user, "token": token})
}

func (h *Handler) SignIn(c *fiber.Ctx) error {
	var req signInReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	user, token, err := h.auth.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"user": user, "token": token})
}

func (h *Handler) SignOut(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authorization header required"})
	}
	if err := h.auth.SignOut(c.Context(), token); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "signed out"})
}

// GetSession returns the current user, or null when no live session exists.
func (h *Handler) GetSession(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.JSON(fiber.Map{"session": nil})
	}
	user, _, err := h.auth.GetSession(c.Context(), token)
	if err != nil {
		return c.JSON(fiber.Map{"session": nil})
	}
	return c.JSON(fiber.Map{"session": fiber.Map{"user": user}})
}
