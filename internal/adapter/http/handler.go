package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"resume-builder/internal/domain"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/apperror"
	"resume-builder/pkg/logger"
)

// ResumeLister is the slice of the store the list/detail/delete endpoints
// need.
type ResumeLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Record, error)
	DeleteByID(ctx context.Context, id, userID uuid.UUID) error
}

type Handler struct {
	auth     *usecase.AuthService
	manager  *usecase.Manager
	exporter *usecase.Exporter
	adviser  *usecase.Adviser
	resumes  ResumeLister
	log      logger.Logger
}

func NewHandler(auth *usecase.AuthService, manager *usecase.Manager, exporter *usecase.Exporter, adviser *usecase.Adviser, resumes ResumeLister, log logger.Logger) *Handler {
	return &Handler{
		auth:     auth,
		manager:  manager,
		exporter: exporter,
		adviser:  adviser,
		resumes:  resumes,
		log:      log,
	}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/auth/signup", h.SignUp)
	app.Post("/auth/signin", h.SignIn)
	app.Post("/auth/signout", h.SignOut)
	app.Get("/auth/session", h.GetSession)

	authed := app.Group("", h.RequireAuth)

	authed.Get("/resumes", h.ListResumes)
	authed.Get("/resumes/:id", h.GetResume)
	authed.Delete("/resumes/:id", h.DeleteResume)

	authed.Post("/builder/sessions", h.OpenSession)
	authed.Get("/builder/sessions/:id", h.GetSessionState)
	authed.Put("/builder/sessions/:id/sections/:section", h.CommitSection)
	authed.Put("/builder/sessions/:id/template", h.SetTemplate)
	authed.Post("/builder/sessions/:id/save", h.SaveResume)
	authed.Post("/builder/sessions/:id/ai-summary", h.AssistSummary)
	authed.Get("/builder/sessions/:id/preview", h.Preview)
	authed.Get("/builder/sessions/:id/export", h.Export)
	authed.Delete("/builder/sessions/:id", h.CloseSession)

	authed.Post("/advice/section", h.AdviseSection)
	authed.Post("/advice/review", h.AdviseReview)
	authed.Post("/advice/chat", h.AdviseChat)
}

// respondError maps the error taxonomy onto HTTP statuses. Every failure is
// reported at the initiating action; nothing propagates further.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	status := apperror.ToHTTPStatus(err)
	msg := "something went wrong"
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	if status >= 500 {
		h.log.Error("request failed", err, zap.String("path", c.Path()))
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
