package book

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// PageSize is the number of books shown on one list page.
const PageSize = 10

// Book represents a book entity.
type Book struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Author    string    `db:"author"`
	Genre     string    `db:"genre"`
	Year      *int      `db:"year"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// YearText returns the publication year as text, or "" when unknown.
func (b Book) YearText() string {
	if b.Year == nil {
		return ""
	}
	return strconv.Itoa(*b.Year)
}

// Matches reports whether term occurs in the title, author, genre or year,
// ignoring case. An empty term matches every book.
func (b Book) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range []string{b.Title, b.Author, b.Genre, b.YearText()} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Input holds the raw values of a submitted book form.
type Input struct {
	Title  string `form:"title" validate:"required,max=255"`
	Author string `form:"author" validate:"required,max=255"`
	Genre  string `form:"genre" validate:"max=255"`
	Year   string `form:"year" validate:"omitempty,year,yearrange"`
}

// Normalize trims surrounding whitespace from every field.
func (in Input) Normalize() Input {
	return Input{
		Title:  strings.TrimSpace(in.Title),
		Author: strings.TrimSpace(in.Author),
		Genre:  strings.TrimSpace(in.Genre),
		Year:   strings.TrimSpace(in.Year),
	}
}

// Book builds an unsaved Book from the input. A year that does not parse is
// left unset.
func (in Input) Book() Book {
	b := Book{
		Title:  in.Title,
		Author: in.Author,
		Genre:  in.Genre,
	}
	if y, err := strconv.Atoi(in.Year); err == nil {
		b.Year = &y
	}
	return b
}

// InputFrom returns the form values that would reproduce b.
func InputFrom(b Book) Input {
	return Input{
		Title:  b.Title,
		Author: b.Author,
		Genre:  b.Genre,
		Year:   b.YearText(),
	}
}

// Query defines the search filter and window for listing books.
type Query struct {
	Search string
	Limit  int
	Offset int
}

// Page is one page of a filtered book listing.
type Page struct {
	Books      []Book
	Search     string
	Page       int
	Total      int
	TotalPages int
}

// TotalPages returns ceil(total / size).
func TotalPages(total, size int) int {
	if size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
