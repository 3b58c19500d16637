package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ListResumes returns the user's resumes, most recently updated first.
func (h *Handler) ListResumes(c *fiber.Ctx) error {
	user := currentUser(c)
	records, err := h.resumes.ListByUser(c.Context(), user.ID)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"resumes": records})
}

func (h *Handler) GetResume(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid resume id"})
	}

	rec, err := h.resumes.GetByID(c.Context(), id)
	if err != nil {
		return h.respondError(c, err)
	}
	if rec.UserID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "resume belongs to another user"})
	}
	return c.JSON(rec)
}

func (h *Handler) DeleteResume(c *fiber.Ctx) error {
	user := currentUser(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid resume id"})
	}

	if err := h.resumes.DeleteByID(c.Context(), id, user.ID); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
