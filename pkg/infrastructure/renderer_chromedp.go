package infrastructure

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const (
	// renderWidth is the fixed CSS pixel width every export is laid out at,
	// so the result is independent of any caller viewport.
	renderWidth = 800
	// renderScale supersamples the rasterized layout for print quality.
	renderScale = 2.0
	// a4WidthInches is the fixed page width (210mm).
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

type ChromedpRenderer struct {
	chromePath string
}

func NewChromedpRenderer(chromePath string) *ChromedpRenderer {
	return &ChromedpRenderer{chromePath: chromePath}
}

// RenderHTMLToPDF lays the HTML out at the fixed render width and prints it
// as a single tall page: A4 width, height scaled to the content's aspect
// ratio. The temp directory and browser context are torn down on every exit
// path, so no sizing or state leaks between exports.
func (r *ChromedpRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	path := r.chromePath
	if path == "" {
		path = os.Getenv("CHROME_PATH")
	}
	if path != "" {
		opts = append(opts, chromedp.ExecPath(path))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	ctx2, cancel2 := context.WithTimeout(cctx, 60*time.Second)
	defer cancel2()

	tmpDir, err := os.MkdirTemp("", "resume-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, err
	}

	var pdfBuf []byte
	var contentHeight float64
	err = chromedp.Run(ctx2,
		chromedp.EmulateViewport(renderWidth, 0, chromedp.EmulateScale(renderScale)),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(`document.documentElement.scrollHeight`, &contentHeight),
		chromedp.ActionFunc(func(ctx context.Context) error {
			paperHeight := a4HeightInches
			if contentHeight > 0 {
				// one tall page, height proportional to the layout
				paperHeight = a4WidthInches * contentHeight / float64(renderWidth)
			}
			var err error
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(paperHeight).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
