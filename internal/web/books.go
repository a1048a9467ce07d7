package web

import (
	"errors"
	"net/http"

	"bookshelf/internal/book"
)

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	page, err := h.queries.List(r.Context(), q.Get("search"), parsePage(q.Get("page")))
	if err != nil {
		return err
	}
	return h.views.Render(w, http.StatusOK, "index", newListView(page))
}

func (h *Handler) newBook(w http.ResponseWriter, _ *http.Request) error {
	return h.views.Render(w, http.StatusOK, "new-book", formView{Title: "New Book"})
}

func (h *Handler) createBook(w http.ResponseWriter, r *http.Request) error {
	if err := parseForm(r); err != nil {
		return err
	}

	_, err := h.commands.Create(r.Context(), inputFromForm(r.PostForm))
	var verr *book.ValidationError
	if errors.As(err, &verr) {
		return h.views.Render(w, http.StatusOK, "new-book", formView{
			Title:  "New Book",
			Book:   verr.Book,
			Input:  verr.Input,
			Errors: verr.Fields,
		})
	}
	if err != nil {
		return err
	}

	http.Redirect(w, r, "/books", http.StatusFound)
	return nil
}

func (h *Handler) showBook(w http.ResponseWriter, r *http.Request) error {
	id, err := book.ParseID(r.PathValue("id"))
	if err != nil {
		return err
	}
	b, err := h.commands.Get(r.Context(), id)
	if err != nil {
		return err
	}
	return h.views.Render(w, http.StatusOK, "update-book", formView{
		Title: b.Title,
		Book:  b,
		Input: book.InputFrom(b),
	})
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request) error {
	id, err := book.ParseID(r.PathValue("id"))
	if err != nil {
		return err
	}
	if err := parseForm(r); err != nil {
		return err
	}

	_, err = h.commands.Update(r.Context(), id, inputFromForm(r.PostForm))
	var verr *book.ValidationError
	if errors.As(err, &verr) {
		return h.views.Render(w, http.StatusOK, "update-book", formView{
			Title:  "Update Book",
			Book:   verr.Book,
			Input:  verr.Input,
			Errors: verr.Fields,
		})
	}
	if err != nil {
		return err
	}

	http.Redirect(w, r, "/books", http.StatusFound)
	return nil
}

func (h *Handler) deleteBook(w http.ResponseWriter, r *http.Request) error {
	id, err := book.ParseID(r.PathValue("id"))
	if err != nil {
		return err
	}
	if err := h.commands.Delete(r.Context(), id); err != nil {
		return err
	}
	http.Redirect(w, r, "/books", http.StatusFound)
	return nil
}
