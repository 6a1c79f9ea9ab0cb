package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nexuszen/quotation-studio/internal/editor"
	"github.com/nexuszen/quotation-studio/internal/invoice"
	"github.com/nexuszen/quotation-studio/internal/render"
	"github.com/nexuszen/quotation-studio/internal/server"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	envErr := godotenv.Load()

	cfg := server.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("could not read .env", "error", envErr)
	}

	loc, err := time.LoadLocation(cfg.DefaultTimeZone)
	if err != nil {
		logger.Warn("unknown time zone, using UTC", "tz", cfg.DefaultTimeZone, "error", err)
		loc = time.UTC
	}

	var profile invoice.Profile
	if cfg.ProfilePath != "" {
		profile, err = invoice.LoadProfile(cfg.ProfilePath)
		if err != nil {
			logger.Error("load profile failed", "path", cfg.ProfilePath, "error", err)
			os.Exit(1)
		}
		logger.Info("profile loaded", "path", cfg.ProfilePath)
	}
	initial := func() invoice.InvoiceData {
		return profile.Apply(invoice.Default(time.Now().In(loc)))
	}

	session := editor.NewSession(initial, editor.WithLogger(logger))
	defer session.Close()

	var printer server.Printer
	if cfg.PDFEnabled {
		printer = render.NewPrintService(
			render.NewChromiumPrinter(render.ChromiumConfig{ExecPath: cfg.PDFChromiumPath, Timeout: cfg.PDFTimeout}),
			render.NewInMemoryStorage(cfg.PDFCacheEntries),
			logger,
		)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.NewServer(cfg, session, printer, logger).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("quotation studio listening", "addr", cfg.HTTPAddr, "pdf", cfg.PDFEnabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
