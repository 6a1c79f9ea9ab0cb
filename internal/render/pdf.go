package render

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// A4 in inches, the unit Page.printToPDF expects.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// PagePrinter turns a standalone HTML document into PDF bytes.
type PagePrinter interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

type ChromiumConfig struct {
	ExecPath string
	Timeout  time.Duration
}

// ChromiumPrinter prints documents through headless Chromium. Each call
// starts its own browser; Chromium missing on the host surfaces as an error.
type ChromiumPrinter struct {
	cfg ChromiumConfig
}

func NewChromiumPrinter(cfg ChromiumConfig) ChromiumPrinter {
	return ChromiumPrinter{cfg: cfg}
}

func (p ChromiumPrinter) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if p.cfg.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(p.cfg.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	timeout := p.cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	runCtx, cancelRun := chromedp.NewContext(allocCtx)
	defer cancelRun()
	runCtx, cancelTimeout := context.WithTimeout(runCtx, timeout)
	defer cancelTimeout()

	var pdf []byte
	err := chromedp.Run(runCtx,
		chromedp.Navigate("data:text/html,"+url.PathEscape(html)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				WithPreferCSSPageSize(true).
				WithPrintBackground(true).
				Do(ctx)
			if err == nil {
				pdf = buf
			}
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp run failed: %w", err)
	}
	return pdf, nil
}
