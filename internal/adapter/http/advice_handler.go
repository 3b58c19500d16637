package http

import (
	"github.com/gofiber/fiber/v2"

	"resume-builder/internal/domain"
)

type adviseSectionReq struct {
	Section string `json:"section"`
	Content string `json:"content"`
}

// AdviseSection returns wording suggestions for one section's content.
func (h *Handler) AdviseSection(c *fiber.Ctx) error {
	var req adviseSectionReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	text, err := h.adviser.ImproveSection(c.Context(), domain.Section(req.Section), req.Content)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"suggestions": text})
}

type adviseReviewReq struct {
	Resume domain.Document `json:"resume"`
}

// AdviseReview returns a full-resume review.
func (h *Handler) AdviseReview(c *fiber.Ctx) error {
	var req adviseReviewReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	text, err := h.adviser.ReviewResume(c.Context(), req.Resume)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"review": text})
}

type adviseChatReq struct {
	Query  string           `json:"query"`
	Resume *domain.Document `json:"resume,omitempty"`
}

// AdviseChat answers one career-advice chat turn, with resume context when
// supplied. The full response is awaited and returned atomically.
func (h *Handler) AdviseChat(c *fiber.Ctx) error {
	var req adviseChatReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	text, err := h.adviser.CareerAdvice(c.Context(), req.Query, req.Resume)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"reply": text})
}
