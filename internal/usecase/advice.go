package usecase

import (
	"context"

	"resume-builder/internal/domain"
	"resume-builder/pkg/ai"
	"resume-builder/pkg/apperror"
)

// TextGenerator is the remote text-generation collaborator.
type TextGenerator interface {
	Generate(ctx context.Context, messages []ai.Message, temperature float64) (string, error)
}

// Adviser wraps the text-generation endpoint in the four advice call shapes.
// Responses are awaited in full; failures surface to the caller with no
// retry and no partial content.
type Adviser struct {
	gen TextGenerator
}

func NewAdviser(gen TextGenerator) *Adviser {
	return &Adviser{gen: gen}
}

// GenerateSummary produces a professional summary paragraph from the
// document's other sections.
func (a *Adviser) GenerateSummary(ctx context.Context, doc domain.Document) (string, error) {
	text, err := a.gen.Generate(ctx, ai.SummaryPrompt(&doc), ai.TemperatureDefault)
	if err != nil {
		return "", apperror.NewUnavailable("summary generation failed", err)
	}
	return text, nil
}

// ImproveSection returns suggestions for one section's content.
func (a *Adviser) ImproveSection(ctx context.Context, section domain.Section, content string) (string, error) {
	if !section.Valid() {
		return "", apperror.NewInvalidInput("unknown section "+string(section), nil)
	}
	text, err := a.gen.Generate(ctx, ai.SectionSuggestionsPrompt(section, content), ai.TemperatureDefault)
	if err != nil {
		return "", apperror.NewUnavailable("section suggestions failed", err)
	}
	return text, nil
}

// ReviewResume returns a full-resume review.
func (a *Adviser) ReviewResume(ctx context.Context, doc domain.Document) (string, error) {
	text, err := a.gen.Generate(ctx, ai.ReviewPrompt(&doc), ai.TemperatureDefault)
	if err != nil {
		return "", apperror.NewUnavailable("resume review failed", err)
	}
	return text, nil
}

// CareerAdvice answers one chat turn, with resume context when supplied.
func (a *Adviser) CareerAdvice(ctx context.Context, query string, doc *domain.Document) (string, error) {
	if query == "" {
		return "", apperror.NewInvalidInput("query must not be empty", nil)
	}
	text, err := a.gen.Generate(ctx, ai.CareerAdvicePrompt(query, doc), ai.TemperatureChat)
	if err != nil {
		return "", apperror.NewUnavailable("career advice failed", err)
	}
	return text, nil
}

// AssistSummary is the builder's "AI Assist" flow: it requires personal info
// to be filled in, generates a summary, and commits it into the session.
func (a *Adviser) AssistSummary(ctx context.Context, s *Session) (CommitResult, string, error) {
	doc := s.Document()
	if doc.Personal.Empty() {
		return CommitResult{}, "", apperror.NewInvalidInput("complete your personal information first", nil)
	}
	text, err := a.GenerateSummary(ctx, doc)
	if err != nil {
		return CommitResult{}, "", err
	}
	res := s.ApplyGeneratedSummary(text)
	return res, text, nil
}
