package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bookshelf/internal/book"
)

// TestBook is a stored book for testing
var TestBook = book.Book{
	ID:        1,
	Title:     "Pride and Prejudice",
	Author:    "Jane Austen",
	Genre:     "Classic",
	Year:      Year(1813),
	CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	UpdatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
}

// Year returns a pointer to y for use in book literals
func Year(y int) *int {
	return &y
}

// SampleBooks returns n numbered books with IDs 1..n
func SampleBooks(n int) []book.Book {
	out := make([]book.Book, 0, n)
	for i := 1; i <= n; i++ {
		b := TestBook
		b.ID = int64(i)
		b.Title = "Book " + strconv.Itoa(i)
		b.Year = Year(1900 + i)
		out = append(out, b)
	}
	return out
}

// NewRequest creates a new HTTP request for testing
func NewRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

// NewFormRequest creates a url-encoded form submission for testing
func NewFormRequest(method, path string, form url.Values) *http.Request {
	r := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

// BookForm returns the form values that submit in
func BookForm(in book.Input) url.Values {
	return url.Values{
		"title":  {in.Title},
		"author": {in.Author},
		"genre":  {in.Genre},
		"year":   {in.Year},
	}
}

// RecordResponse records the HTTP response for testing
type RecordResponse struct {
	Code     int
	Header   http.Header
	Body     string
	Location string
}

// RecordHTTPResponse records the HTTP response
func RecordHTTPResponse(w *httptest.ResponseRecorder) RecordResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	return RecordResponse{
		Code:     result.StatusCode,
		Header:   result.Header,
		Body:     string(bodyBytes),
		Location: result.Header.Get("Location"),
	}
}

// AssertResponseCode checks if the response code matches expected
func AssertResponseCode(t interface {
	Errorf(format string, args ...any)
}, got, want int) {
	if got != want {
		t.Errorf("got status code %d, want %d", got, want)
	}
}

// AssertBodyContains checks if the response body contains every fragment
func AssertBodyContains(t interface {
	Errorf(format string, args ...any)
}, body string, fragments ...string) {
	for _, f := range fragments {
		if !strings.Contains(body, f) {
			t.Errorf("response body missing %q", f)
		}
	}
}
