package render

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/nexuszen/quotation-studio/internal/invoice"
)

const pdfContentType = "application/pdf"

type PrintResult struct {
	Key    string
	PDF    []byte
	Cached bool
}

// PrintService prints quotations to PDF. Output is keyed by the rendered
// document, so an unchanged quotation is printed once and served from the
// store afterwards. Concurrent prints of one document share a single run.
type PrintService struct {
	printer PagePrinter
	store   ArtifactStore
	logger  *slog.Logger
	group   singleflight.Group
}

func NewPrintService(printer PagePrinter, store ArtifactStore, logger *slog.Logger) *PrintService {
	return &PrintService{printer: printer, store: store, logger: logger}
}

func (s *PrintService) Print(ctx context.Context, data invoice.InvoiceData) (PrintResult, error) {
	html, err := Preview(data)
	if err != nil {
		return PrintResult{}, err
	}
	key := DocumentKey(html)

	if body, _, err := s.store.GetObject(ctx, key); err == nil {
		return PrintResult{Key: key, PDF: body, Cached: true}, nil
	} else if !errors.Is(err, ErrNotFound) {
		return PrintResult{}, fmt.Errorf("read artifact: %w", err)
	}

	// The shared run must not die with whichever caller started it.
	runCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do(key, func() (any, error) {
		// A run that finished between the lookup above and here already
		// stored the artifact.
		if body, _, err := s.store.GetObject(runCtx, key); err == nil {
			return PrintResult{Key: key, PDF: body, Cached: true}, nil
		}
		pdf, err := s.printer.PrintPDF(runCtx, html)
		if err != nil {
			return nil, err
		}
		if err := s.store.PutObject(runCtx, key, pdf, pdfContentType); err != nil {
			s.logger.Warn("store pdf failed", "key", key, "error", err)
		}
		s.logger.Info("pdf printed", "key", key, "bytes", len(pdf))
		return PrintResult{Key: key, PDF: pdf}, nil
	})
	if err != nil {
		return PrintResult{}, fmt.Errorf("print pdf: %w", err)
	}
	return v.(PrintResult), nil
}

// DocumentKey names the artifact for a rendered document.
func DocumentKey(html string) string {
	sum := sha256.Sum256([]byte(html))
	return "quotations/" + hex.EncodeToString(sum[:]) + ".pdf"
}
