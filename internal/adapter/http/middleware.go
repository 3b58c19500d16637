package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"resume-builder/internal/domain"
	"resume-builder/pkg/auth"
)

const (
	localUser   = "user"
	localClaims = "claims"
)

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get("Authorization"))
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth resolves the bearer token to a live session. A present session
// is "authenticated"; anything else is a 401.
func (h *Handler) RequireAuth(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authorization header required"})
	}

	user, claims, err := h.auth.GetSession(c.Context(), token)
	if err != nil {
		return h.respondError(c, err)
	}

	c.Locals(localUser, user)
	c.Locals(localClaims, claims)
	return c.Next()
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals(localUser).(*domain.User)
	return u
}

func currentClaims(c *fiber.Ctx) *auth.Claims {
	cl, _ := c.Locals(localClaims).(*auth.Claims)
	return cl
}
