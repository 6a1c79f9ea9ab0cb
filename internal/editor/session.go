package editor

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/nexuszen/quotation-studio/internal/invoice"
)

var (
	// ErrSuperseded is reported by an upload whose slot received a newer
	// upload before it finished.
	ErrSuperseded = errors.New("upload superseded by a newer upload")
	ErrClosed     = errors.New("session closed")
)

// State is one immutable version of the quotation.
type State struct {
	Data     invoice.InvoiceData `json:"invoice"`
	Revision uint64              `json:"revision"`
}

// Session owns the single live InvoiceData. Every edit builds a new value
// and swaps it in; readers always get a private copy.
type Session struct {
	mu       sync.RWMutex
	data     invoice.InvoiceData
	revision uint64
	closed   bool

	initial func() invoice.InvoiceData
	newID   func() string
	encode  func(context.Context, openapi_types.File) (string, error)
	logger  *slog.Logger

	baseCtx   context.Context
	cancelAll context.CancelFunc
	uploadSeq uint64
	pending   map[ImageSlot]pendingUpload
	wg        sync.WaitGroup
}

type pendingUpload struct {
	generation uint64
	cancel     context.CancelFunc
}

type Option func(*Session)

// WithIDGenerator replaces the item id source (uuid by default).
func WithIDGenerator(gen func() string) Option {
	return func(s *Session) { s.newID = gen }
}

// WithEncoder replaces the file to data URI conversion used by Upload.
func WithEncoder(encode func(context.Context, openapi_types.File) (string, error)) Option {
	return func(s *Session) { s.encode = encode }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// NewSession starts a session from initial(). Reset calls initial again.
func NewSession(initial func() invoice.InvoiceData, opts ...Option) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		initial:   initial,
		newID:     uuid.NewString,
		encode:    encodeFile,
		logger:    slog.Default(),
		baseCtx:   ctx,
		cancelAll: cancel,
		pending:   map[ImageSlot]pendingUpload{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.data = initial().Clone()
	return s
}

func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

// Replace swaps in a whole new quotation.
func (s *Session) Replace(data invoice.InvoiceData) State {
	st, _ := s.update("replace", func(invoice.InvoiceData) (invoice.InvoiceData, error) {
		return data.Clone(), nil
	})
	return st
}

func (s *Session) Reset() State {
	st, _ := s.update("reset", func(invoice.InvoiceData) (invoice.InvoiceData, error) {
		return s.initial().Clone(), nil
	})
	return st
}

func (s *Session) EditField(f Field, value string) (State, error) {
	return s.update("field "+f.String(), func(cur invoice.InvoiceData) (invoice.InvoiceData, error) {
		return SetField(cur, f, value)
	})
}

func (s *Session) EditItem(index int, f ItemField, raw string) (State, error) {
	return s.update("item "+f.String(), func(cur invoice.InvoiceData) (invoice.InvoiceData, error) {
		return SetItemField(cur, index, f, raw)
	})
}

// AddItem appends an empty row with a fresh id and returns the new state.
func (s *Session) AddItem() State {
	id := s.newID()
	st, _ := s.update("add item", func(cur invoice.InvoiceData) (invoice.InvoiceData, error) {
		return AppendItem(cur, id), nil
	})
	return st
}

func (s *Session) RemoveItem(index int) (State, error) {
	return s.update("remove item", func(cur invoice.InvoiceData) (invoice.InvoiceData, error) {
		return RemoveItemAt(cur, index)
	})
}

func (s *Session) AddTerm(text string) State {
	st, _ := s.update("add term", func(cur invoice.InvoiceData) (invoice.InvoiceData, error) {
		return AppendTerm(cur, text), nil
	})
	return st
}

func (s *Session) EditTerm(index int, text string) (State, error) {
	return s.update("edit term", func(cur invoice.InvoiceData) (invoice.InvoiceData, error) {
		return SetTerm(cur, index, text)
	})
}

func (s *Session) RemoveTerm(index int) (State, error) {
	return s.update("remove term", func(cur invoice.InvoiceData) (invoice.InvoiceData, error) {
		return RemoveTermAt(cur, index)
	})
}

// ClearImage empties slot. A pending upload to the slot still applies when
// it finishes.
func (s *Session) ClearImage(slot ImageSlot) (State, error) {
	return s.update("clear "+string(slot), func(cur invoice.InvoiceData) (invoice.InvoiceData, error) {
		return SetImage(cur, slot, "")
	})
}

// Upload encodes file into a data URI in the background and stores it in
// slot once done. The result is applied to the state current at completion,
// so edits made meanwhile survive. A newer upload to the same slot cancels
// and supersedes an older one. An empty file leaves the state unchanged.
func (s *Session) Upload(slot ImageSlot, file openapi_types.File) (*Upload, error) {
	if _, err := ParseImageSlot(string(slot)); err != nil {
		return nil, err
	}
	u := newUpload(slot)
	if file.FileSize() == 0 {
		u.finish(false, 0, nil)
		return u, nil
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	s.uploadSeq++
	gen := s.uploadSeq
	if prev, ok := s.pending[slot]; ok {
		prev.cancel()
	}
	ctx, cancel := context.WithCancel(s.baseCtx)
	s.pending[slot] = pendingUpload{generation: gen, cancel: cancel}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		defer cancel()

		uri, err := s.encode(ctx, file)

		s.mu.Lock()
		cur, ok := s.pending[slot]
		current := ok && cur.generation == gen
		if current {
			delete(s.pending, slot)
		}
		switch {
		case s.closed:
			err = ErrClosed
		case !current:
			err = ErrSuperseded
		}
		if err != nil {
			s.mu.Unlock()
			s.logger.Warn("image upload not applied", "slot", slot, "file", file.Filename(), "error", err)
			u.finish(false, 0, err)
			return
		}
		next, _ := SetImage(s.data, slot, uri)
		s.swapLocked(next)
		rev := s.revision
		s.mu.Unlock()

		s.logger.Info("image upload applied", "slot", slot, "file", file.Filename(), "bytes", file.FileSize(), "revision", rev)
		u.finish(true, rev, nil)
	}()
	return u, nil
}

// Close cancels pending uploads and waits for their goroutines.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.pending = map[ImageSlot]pendingUpload{}
	s.mu.Unlock()
	s.cancelAll()
	s.wg.Wait()
}

func (s *Session) update(op string, fn func(invoice.InvoiceData) (invoice.InvoiceData, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.data)
	if err != nil {
		return s.stateLocked(), err
	}
	s.swapLocked(next)
	s.logger.Debug("invoice updated", "op", op, "revision", s.revision)
	return s.stateLocked(), nil
}

func (s *Session) swapLocked(next invoice.InvoiceData) {
	s.data = next
	s.revision++
}

func (s *Session) stateLocked() State {
	return State{Data: s.data.Clone(), Revision: s.revision}
}

// Upload tracks one background image encode.
type Upload struct {
	Slot ImageSlot

	done     chan struct{}
	err      error
	applied  bool
	revision uint64
}

func newUpload(slot ImageSlot) *Upload {
	return &Upload{Slot: slot, done: make(chan struct{})}
}

func (u *Upload) finish(applied bool, revision uint64, err error) {
	u.applied = applied
	u.revision = revision
	u.err = err
	close(u.done)
}

func (u *Upload) Done() <-chan struct{} { return u.done }

// Wait blocks until the upload finishes or ctx ends. Giving up on the wait
// does not stop the upload.
func (u *Upload) Wait(ctx context.Context) error {
	select {
	case <-u.done:
		return u.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Applied reports whether the upload changed the state. Valid after Done.
func (u *Upload) Applied() bool { return u.applied }

// Revision is the state revision the upload produced, zero if not applied.
func (u *Upload) Revision() uint64 { return u.revision }
