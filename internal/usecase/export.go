package usecase

import (
	"context"
	"strings"

	"resume-builder/internal/domain"
	"resume-builder/internal/render"
	"resume-builder/pkg/apperror"
)

// Renderer turns a rendered HTML layout into PDF bytes.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type ExportResult struct {
	Filename string
	PDF      []byte
}

// Exporter produces a downloadable PDF from a document and template choice.
// Export reads the document by value and never mutates it; any render or
// encoding failure aborts with an error and nothing else changes.
type Exporter struct {
	renderer Renderer
}

func NewExporter(r Renderer) *Exporter {
	return &Exporter{renderer: r}
}

func (e *Exporter) Export(ctx context.Context, doc domain.Document, template domain.TemplateID) (ExportResult, error) {
	html, err := render.Render(&doc, template)
	if err != nil {
		return ExportResult{}, err
	}

	pdf, err := e.renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return ExportResult{}, apperror.NewUnavailable("PDF rendering failed", err)
	}
	if len(pdf) == 0 || !strings.HasPrefix(string(pdf), "%PDF") {
		return ExportResult{}, apperror.NewUnavailable("PDF rendering produced invalid output", nil)
	}

	return ExportResult{
		Filename: doc.Title() + ".pdf",
		PDF:      pdf,
	}, nil
}
