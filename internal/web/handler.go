package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bookshelf/internal/book"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures the optional parts of the router.
type Options struct {
	// Production hides error details from error pages.
	Production bool
	// Pinger backs /readyz. A nil Pinger always reports ready.
	Pinger Pinger
	// Metrics is mounted at /metrics when non-nil.
	Metrics http.Handler
}

// Handler serves the HTML book catalog.
type Handler struct {
	queries    *book.QueryService
	commands   *book.CommandService
	views      *Renderer
	pinger     Pinger
	metrics    http.Handler
	production bool
}

func NewHandler(queries *book.QueryService, commands *book.CommandService, views *Renderer, opts Options) *Handler {
	return &Handler{
		queries:    queries,
		commands:   commands,
		views:      views,
		pinger:     opts.Pinger,
		metrics:    opts.Metrics,
		production: opts.Production,
	}
}

// handlerFunc is an HTTP handler that reports failures instead of writing
// them; the returned error is rendered by PresentError.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (h *Handler) handle(fn handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			h.PresentError(w, r, err)
		}
	})
}

// Routes returns the application router. Any request no route matches is
// answered with the not-found page.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", h.handle(h.home))
	mux.Handle("GET /books", h.handle(h.listBooks))
	mux.Handle("GET /books/new", h.handle(h.newBook))
	mux.Handle("GET /books/new-book", h.handle(h.newBook))
	mux.Handle("POST /books", h.handle(h.createBook))
	mux.Handle("GET /books/error", h.handle(h.serverError))
	mux.Handle("GET /books/{id}", h.handle(h.showBook))
	mux.Handle("POST /books/{id}", h.handle(h.updateBook))
	mux.Handle("POST /books/{id}/delete", h.handle(h.deleteBook))

	mux.Handle("GET /static/", staticHandler())
	mux.HandleFunc("GET /healthz", h.healthz)
	mux.HandleFunc("GET /readyz", h.readyz)
	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics)
	}

	mux.Handle("/", h.handle(func(http.ResponseWriter, *http.Request) error {
		return book.ErrNotFound
	}))
	return mux
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) error {
	http.Redirect(w, r, "/books", http.StatusFound)
	return nil
}

// serverError deliberately fails so the error page can be checked end to end.
func (h *Handler) serverError(http.ResponseWriter, *http.Request) error {
	return &StatusError{
		Status:  http.StatusInternalServerError,
		Message: "Error 500: Something went wrong.",
	}
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// parseForm reads the submitted form, mapping an oversized body to 413.
func parseForm(r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &StatusError{Status: http.StatusRequestEntityTooLarge, Message: "Request body too large", Err: err}
		}
		return &StatusError{Status: http.StatusBadRequest, Message: "Malformed form submission", Err: err}
	}
	return nil
}
