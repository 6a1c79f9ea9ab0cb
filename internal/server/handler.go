package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/nexuszen/quotation-studio/internal/editor"
	"github.com/nexuszen/quotation-studio/internal/invoice"
	"github.com/nexuszen/quotation-studio/internal/render"
)

var errBadRequest = errors.New("bad request")

// Printer is the part of render.PrintService the handlers use.
type Printer interface {
	Print(ctx context.Context, data invoice.InvoiceData) (render.PrintResult, error)
}

// Server wires the editing session, the renderer and the printer into HTTP
// handlers.
type Server struct {
	cfg     Config
	session *editor.Session
	printer Printer
	limiter *RateLimiter
	logger  *slog.Logger
}

// NewServer builds the handlers. printer may be nil, which disables
// /print.pdf.
func NewServer(cfg Config, session *editor.Session, printer Printer, logger *slog.Logger) *Server {
	return &Server{
		cfg:     cfg,
		session: session,
		printer: printer,
		limiter: NewRateLimiter(cfg.PrintRatePerMin, time.Minute),
		logger:  logger,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(Correlate)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.EditorPage)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/preview", s.PreviewDocument)
	r.Get("/preview/sheet", s.PreviewSheet)
	r.Get("/print.pdf", s.PrintPDF)

	r.Route("/api/invoice", func(r chi.Router) {
		r.Get("/", s.GetInvoice)
		r.Put("/", s.ReplaceInvoice)
		r.Post("/reset", s.ResetInvoice)
		r.Patch("/fields", s.EditField)
		r.Get("/totals", s.GetTotals)
		r.Get("/findings", s.GetFindings)

		r.Post("/items", s.AddItem)
		r.Patch("/items/{index}", s.EditItem)
		r.Delete("/items/{index}", s.RemoveItem)

		r.Post("/terms", s.AddTerm)
		r.Patch("/terms/{index}", s.EditTerm)
		r.Delete("/terms/{index}", s.RemoveTerm)

		r.Post("/images/{slot}", s.UploadImage)
		r.Delete("/images/{slot}", s.ClearImage)
	})
	return r
}

type totalsResponse struct {
	SubTotal      decimal.Decimal `json:"subTotal"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	Formatted     formattedTotals `json:"formatted"`
}

type formattedTotals struct {
	SubTotal      string `json:"subTotal"`
	TotalDiscount string `json:"totalDiscount"`
	GrandTotal    string `json:"grandTotal"`
}

type stateResponse struct {
	Invoice  invoice.InvoiceData `json:"invoice"`
	Revision uint64              `json:"revision"`
	Totals   totalsResponse      `json:"totals"`
	Findings []invoice.Finding   `json:"findings"`
}

func newTotalsResponse(items []invoice.InvoiceItem) totalsResponse {
	t := invoice.ComputeTotals(items)
	return totalsResponse{
		SubTotal:      t.SubTotal,
		TotalDiscount: t.TotalDiscount,
		GrandTotal:    t.GrandTotal,
		Formatted: formattedTotals{
			SubTotal:      invoice.FormatCurrency(t.SubTotal),
			TotalDiscount: invoice.FormatCurrency(t.TotalDiscount),
			GrandTotal:    invoice.FormatCurrency(t.GrandTotal),
		},
	}
}

func newStateResponse(st editor.State) stateResponse {
	return stateResponse{
		Invoice:  st.Data,
		Revision: st.Revision,
		Totals:   newTotalsResponse(st.Data.Items),
		Findings: invoice.Check(st.Data),
	}
}

// editRequest carries one edit. Value accepts a JSON string or number so
// numeric columns can be sent either way.
type editRequest struct {
	Field string    `json:"field"`
	Value editValue `json:"value"`
}

type termRequest struct {
	Text string `json:"text"`
}

type editValue string

func (v *editValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = editValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("value must be a string or a number")
	}
	*v = editValue(n.String())
	return nil
}

// GetInvoice matches GET /api/invoice
func (s *Server) GetInvoice(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newStateResponse(s.session.Snapshot()))
}

// ReplaceInvoice matches PUT /api/invoice
func (s *Server) ReplaceInvoice(w http.ResponseWriter, r *http.Request) {
	var data invoice.InvoiceData
	if err := decodeJSON(r.Body, &data); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := data.CheckAmounts(); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, newStateResponse(s.session.Replace(data)))
}

// ResetInvoice matches POST /api/invoice/reset
func (s *Server) ResetInvoice(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newStateResponse(s.session.Reset()))
}

// EditField matches PATCH /api/invoice/fields
func (s *Server) EditField(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	f, err := editor.ParseField(req.Field)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondState(w, r)(s.session.EditField(f, string(req.Value)))
}

// GetTotals matches GET /api/invoice/totals
func (s *Server) GetTotals(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, newTotalsResponse(s.session.Snapshot().Data.Items))
}

// GetFindings matches GET /api/invoice/findings
func (s *Server) GetFindings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"findings": invoice.Check(s.session.Snapshot().Data)})
}

// AddItem matches POST /api/invoice/items
func (s *Server) AddItem(w http.ResponseWriter, _ *http.Request) {
	st := s.session.AddItem()
	writeJSON(w, http.StatusCreated, struct {
		stateResponse
		Item invoice.InvoiceItem `json:"item"`
	}{
		stateResponse: newStateResponse(st),
		Item:          st.Data.Items[len(st.Data.Items)-1],
	})
}

// EditItem matches PATCH /api/invoice/items/{index}
func (s *Server) EditItem(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req editRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	f, err := editor.ParseItemField(req.Field)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondState(w, r)(s.session.EditItem(index, f, string(req.Value)))
}

// RemoveItem matches DELETE /api/invoice/items/{index}
func (s *Server) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondState(w, r)(s.session.RemoveItem(index))
}

// AddTerm matches POST /api/invoice/terms. An empty body adds a blank term.
func (s *Server) AddTerm(w http.ResponseWriter, r *http.Request) {
	var req termRequest
	if err := decodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newStateResponse(s.session.AddTerm(req.Text)))
}

// EditTerm matches PATCH /api/invoice/terms/{index}
func (s *Server) EditTerm(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req termRequest
	if err := decodeJSON(r.Body, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondState(w, r)(s.session.EditTerm(index, req.Text))
}

// RemoveTerm matches DELETE /api/invoice/terms/{index}
func (s *Server) RemoveTerm(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondState(w, r)(s.session.RemoveTerm(index))
}

// UploadImage matches POST /api/invoice/images/{slot}. The request waits for
// the upload to land; if the client goes away first the upload still
// completes in the background.
func (s *Server) UploadImage(w http.ResponseWriter, r *http.Request) {
	slot, err := editor.ParseImageSlot(chi.URLParam(r, "slot"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.cfg.UploadMaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.UploadMaxBytes)
	}
	if err := r.ParseMultipartForm(s.cfg.UploadMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrNotMultipart):
			w.WriteHeader(http.StatusNoContent)
		case errors.As(err, &tooLarge):
			s.writeErrorBody(w, r, http.StatusRequestEntityTooLarge, "UPLOAD_TOO_LARGE",
				fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit), false)
		default:
			s.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		}
		return
	}
	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	// Multipart parts are removed when the request ends, and the upload may
	// outlive it, so the content is read up front.
	var part openapi_types.File
	part.InitFromMultipart(headers[0])
	raw, err := part.Bytes()
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: read upload: %v", errBadRequest, err))
		return
	}
	var file openapi_types.File
	file.InitFromBytes(raw, part.Filename())

	u, err := s.session.Upload(slot, file)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	err = u.Wait(r.Context())
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "pending", "slot": string(slot)})
	case err != nil:
		s.writeError(w, r, err)
	case !u.Applied():
		w.WriteHeader(http.StatusNoContent)
	default:
		writeJSON(w, http.StatusOK, newStateResponse(s.session.Snapshot()))
	}
}

// ClearImage matches DELETE /api/invoice/images/{slot}
func (s *Server) ClearImage(w http.ResponseWriter, r *http.Request) {
	slot, err := editor.ParseImageSlot(chi.URLParam(r, "slot"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respondState(w, r)(s.session.ClearImage(slot))
}

// PreviewDocument matches GET /preview
func (s *Server) PreviewDocument(w http.ResponseWriter, r *http.Request) {
	html, err := render.Preview(s.session.Snapshot().Data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeHTML(w, html)
}

// PreviewSheet matches GET /preview/sheet
func (s *Server) PreviewSheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := render.Sheet(s.session.Snapshot().Data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeHTML(w, string(sheet))
}

// PrintPDF matches GET /print.pdf
func (s *Server) PrintPDF(w http.ResponseWriter, r *http.Request) {
	if s.printer == nil {
		s.writeErrorBody(w, r, http.StatusServiceUnavailable, "PDF_DISABLED", "pdf printing is disabled", false)
		return
	}
	if ok, retryAfter := s.limiter.Allow(r.RemoteAddr); !ok {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds()+0.5)))
		s.writeErrorBody(w, r, http.StatusTooManyRequests, "RATE_LIMITED", "too many print requests", true)
		return
	}

	logger := CorrelationLogger(s.logger, CorrIDFromContext(r.Context()))
	data := s.session.Snapshot().Data
	res, err := s.printer.Print(r.Context(), data)
	if err != nil {
		logger.Warn("pdf render failed", "error", err)
		s.writeErrorBody(w, r, http.StatusServiceUnavailable, "PRINT_FAILED", "pdf printing failed", true)
		return
	}
	logger.Info("pdf served", "key", res.Key, "cached", res.Cached, "bytes", len(res.PDF))

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": pdfFilename(data.InvoiceNo)}))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.PDF)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PDF)
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func pdfFilename(invoiceNo string) string {
	name := unsafeFilename.ReplaceAllString(invoiceNo, "-")
	if name == "" {
		return "quotation.pdf"
	}
	return "quotation-" + name + ".pdf"
}

// respondState writes the outcome of a session edit.
func (s *Server) respondState(w http.ResponseWriter, r *http.Request) func(editor.State, error) {
	return func(st editor.State, err error) {
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, newStateResponse(st))
	}
}

func pathIndex(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "index")
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q is not a number", errBadRequest, raw)
	}
	return i, nil
}

func decodeJSON(body io.ReadCloser, v any) error {
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body: %w", errBadRequest, err)
		}
		return fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err)
	}
	return nil
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	CorrID    string `json:"corrId"`
	Retryable bool   `json:"retryable"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, retryable := http.StatusInternalServerError, "INTERNAL_ERROR", true
	switch {
	case errors.Is(err, errBadRequest):
		status, code, retryable = http.StatusBadRequest, "BAD_REQUEST", false
	case errors.Is(err, editor.ErrUnknownField):
		status, code, retryable = http.StatusBadRequest, "UNKNOWN_FIELD", false
	case errors.Is(err, editor.ErrUnknownSlot):
		status, code, retryable = http.StatusNotFound, "UNKNOWN_SLOT", false
	case errors.Is(err, editor.ErrItemIndex):
		status, code, retryable = http.StatusNotFound, "ITEM_NOT_FOUND", false
	case errors.Is(err, editor.ErrTermIndex):
		status, code, retryable = http.StatusNotFound, "TERM_NOT_FOUND", false
	case errors.Is(err, editor.ErrSuperseded):
		status, code, retryable = http.StatusConflict, "UPLOAD_SUPERSEDED", false
	case errors.Is(err, editor.ErrClosed):
		status, code, retryable = http.StatusServiceUnavailable, "SHUTTING_DOWN", true
	}
	if status >= http.StatusInternalServerError {
		CorrelationLogger(s.logger, CorrIDFromContext(r.Context())).Error("request failed", "error", err)
	}
	s.writeErrorBody(w, r, status, code, err.Error(), retryable)
}

func (s *Server) writeErrorBody(w http.ResponseWriter, r *http.Request, status int, code, message string, retryable bool) {
	writeJSON(w, status, ErrorBody{
		Code:      code,
		Message:   message,
		CorrID:    CorrIDFromContext(r.Context()),
		Retryable: retryable,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}
