package web

import (
	"net/url"
	"strconv"

	"bookshelf/internal/book"
)

type listView struct {
	Title      string
	Books      []book.Book
	Search     string
	Page       int
	TotalPages int
	Pages      []pageLink
}

type pageLink struct {
	Number  int
	URL     string
	Current bool
}

type formView struct {
	Title  string
	Book   book.Book
	Input  book.Input
	Errors []book.FieldError
}

type errorView struct {
	Title   string
	Status  int
	Message string
	Detail  string
}

func newListView(p book.Page) listView {
	v := listView{
		Title:      "Books",
		Books:      p.Books,
		Search:     p.Search,
		Page:       p.Page,
		TotalPages: p.TotalPages,
	}
	for n := 1; n <= p.TotalPages; n++ {
		v.Pages = append(v.Pages, pageLink{
			Number:  n,
			URL:     pageURL(p.Search, n),
			Current: n == p.Page,
		})
	}
	return v
}

// pageURL links to page n of the listing, keeping the active search.
func pageURL(search string, n int) string {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	q.Set("page", strconv.Itoa(n))
	return "/books?" + q.Encode()
}

// parsePage reads the page query parameter. Missing, malformed and
// non-positive values all select the first page.
func parsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func inputFromForm(form url.Values) book.Input {
	return book.Input{
		Title:  form.Get("title"),
		Author: form.Get("author"),
		Genre:  form.Get("genre"),
		Year:   form.Get("year"),
	}
}
