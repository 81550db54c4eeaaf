// Package export prints rendered resume HTML to PDF with a headless
// Chrome/Chromium. Export is best-effort: every failure is logged as a
// warning and yields no bytes.
package export

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds one PDF export, browser start-up included.
const DefaultTimeout = 30 * time.Second

// browserPaths are checked before searching PATH.
var browserPaths = []string{
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/usr/bin/chromium-browser",
	"/usr/bin/chromium",
	"/snap/bin/chromium",
}

// browserNames are looked up on PATH.
var browserNames = []string{"google-chrome", "google-chrome-stable", "chromium-browser", "chromium"}

// FindBrowser returns the path of an installed Chrome or Chromium, or "".
func FindBrowser() string {
	for _, p := range browserPaths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	for _, name := range browserNames {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return ""
}

// Exporter prints HTML documents to PDF.
type Exporter struct {
	// BrowserPath overrides browser discovery.
	BrowserPath string
	Timeout     time.Duration
}

// PDF prints html with the default exporter.
func PDF(ctx context.Context, html string) []byte {
	return (&Exporter{}).PDF(ctx, html)
}

// PDF prints html to an A4-sized PDF without headers or footers. It returns
// nil when no browser is available, the browser fails, or the output is empty.
func (e *Exporter) PDF(ctx context.Context, html string) []byte {
	browser := e.BrowserPath
	if browser == "" {
		browser = FindBrowser()
	}
	if browser == "" {
		log.Warn().Msg("Chrome/Chromium not found; install Chrome for PDF downloads: https://www.google.com/chrome/")
		return nil
	}
	if _, err := os.Stat(browser); err != nil {
		log.Warn().Err(err).Str("browser", browser).Msg("browser not usable for PDF export")
		return nil
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.ExecPath(browser),
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(false).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		log.Warn().Err(err).Msg("PDF generation error")
		return nil
	}
	if len(pdf) == 0 {
		log.Warn().Msg("PDF generation produced no output")
		return nil
	}
	return pdf
}
