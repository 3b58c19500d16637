package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"resume-builder/internal/domain"
	"resume-builder/internal/render"
	"resume-builder/internal/usecase"
)

type openSessionReq struct {
	ResumeID   string `json:"resumeId,omitempty"`
	TemplateID string `json:"templateId,omitempty"`
}

// OpenSession starts a builder session: empty for a new resume, hydrated
// from the store when resumeId is supplied.
func (h *Handler) OpenSession(c *fiber.Ctx) error {
	var req openSessionReq
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}

	var resumeID *uuid.UUID
	if req.ResumeID != "" {
		id, err := uuid.Parse(req.ResumeID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid resumeId"})
		}
		resumeID = &id
	}

	user := currentUser(c)
	claims := currentClaims(c)
	session, err := h.manager.Open(c.Context(), user.ID, claims.ID, resumeID, domain.TemplateID(req.TemplateID))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"sessionId": session.ID,
		"state":     session.Snapshot(),
	})
}

func (h *Handler) session(c *fiber.Ctx) (*usecase.Session, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	user := currentUser(c)
	return h.manager.Get(id, user.ID)
}

func (h *Handler) GetSessionState(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return h.sessionError(c, err)
	}
	return c.JSON(s.Snapshot())
}

// CommitSection merges one section's submitted value into the document and
// reports the confirmation, updated progress and next active section.
func (h *Handler) CommitSection(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return h.sessionError(c, err)
	}

	section := domain.Section(c.Params("section"))
	result, err := s.Commit(section, c.Body())
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(result)
}

type setTemplateReq struct {
	TemplateID string `json:"templateId"`
}

func (h *Handler) SetTemplate(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return h.sessionError(c, err)
	}

	var req setTemplateReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	}
	if err := s.SetTemplate(domain.TemplateID(req.TemplateID)); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"templateId": req.TemplateID})
}

// SaveResume is the manual save action; it is the same operation the
// auto-save timer performs.
func (h *Handler) SaveResume(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return h.sessionError(c, err)
	}

	id, err := h.manager.Save(c.Context(), s)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"resumeId": id, "message": "Resume saved successfully!"})
}

func (h *Handler) AssistSummary(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return h.sessionError(c, err)
	}

	result, summary, err := h.adviser.AssistSummary(c.Context(), s)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"summary":       summary,
		"message":       result.Message,
		"activeSection": result.ActiveSection,
		"progress":      result.Progress,
	})
}

// Preview returns the rendered HTML layout for the session's document.
func (h *Handler) Preview(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return h.sessionError(c, err)
	}

	template := s.Template()
	if q := c.Query("template"); q != "" {
		template = domain.TemplateID(q)
	}

	doc := s.Document()
	html, err := render.Render(&doc, template)
	if err != nil {
		return h.respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}

// Export renders the document to a paginated PDF and triggers a download.
func (h *Handler) Export(c *fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return h.sessionError(c, err)
	}

	result, err := h.exporter.Export(c.Context(), s.Document(), s.Template())
	if err != nil {
		return h.respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+result.Filename+`"`)
	return c.Send(result.PDF)
}

// CloseSession disarms the auto-save loop and drops the session.
func (h *Handler) CloseSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid session id"})
	}
	user := currentUser(c)
	if err := h.manager.Close(id, user.ID); err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "closed"})
}

func (h *Handler) sessionError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	return h.respondError(c, err)
}
