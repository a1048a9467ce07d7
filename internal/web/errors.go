package web

import (
	"errors"
	"log"
	"net/http"

	"bookshelf/internal/book"
	"bookshelf/internal/httpx"
)

// StatusError carries the HTTP status a failure should be shown with.
type StatusError struct {
	Status  int
	Message string
	Err     error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// PresentError renders err as an HTML error page and logs it. ErrNotFound
// becomes the not-found page; everything else uses the generic error page
// with the status of a *StatusError, or 500.
func (h *Handler) PresentError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	view := "error"
	message := http.StatusText(status)

	var se *StatusError
	switch {
	case errors.Is(err, book.ErrNotFound):
		status = http.StatusNotFound
		view = "page-not-found"
		message = "Page Not Found"
	case errors.As(err, &se):
		status = se.Status
		message = se.Message
	}

	log.Printf("error status=%d request_id=%s path=%s err=%v", status, httpx.RequestIDFrom(r), r.URL.Path, err)

	data := errorView{
		Title:   message,
		Status:  status,
		Message: message,
	}
	if !h.production {
		data.Detail = err.Error()
	}
	if rerr := h.views.Render(w, status, view, data); rerr != nil {
		log.Printf("error page render failed: request_id=%s err=%v", httpx.RequestIDFrom(r), rerr)
		http.Error(w, message, status)
	}
}
