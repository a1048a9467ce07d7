package book

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		in     Input
		fields map[string]string
	}{
		{
			name: "valid with every field",
			in:   Input{Title: "Emma", Author: "Jane Austen", Genre: "Classic", Year: "1815"},
		},
		{
			name: "valid without optional fields",
			in:   Input{Title: "Emma", Author: "Jane Austen"},
		},
		{
			name: "negative year is a whole number",
			in:   Input{Title: "The Odyssey", Author: "Homer", Year: "-700"},
		},
		{
			name: "missing title and author",
			in:   Input{Genre: "Classic"},
			fields: map[string]string{
				"title":  `Please provide a value for "Title"`,
				"author": `Please provide a value for "Author"`,
			},
		},
		{
			name:   "non-numeric year",
			in:     Input{Title: "Emma", Author: "Jane Austen", Year: "eighteen"},
			fields: map[string]string{"year": `"Year" must be a whole number`},
		},
		{
			name:   "fractional year",
			in:     Input{Title: "Emma", Author: "Jane Austen", Year: "1815.5"},
			fields: map[string]string{"year": `"Year" must be a whole number`},
		},
		{
			name: "year at the column bounds",
			in:   Input{Title: "Emma", Author: "Jane Austen", Year: "-2147483648"},
		},
		{
			name:   "year above the column range",
			in:     Input{Title: "Emma", Author: "Jane Austen", Year: "3000000000"},
			fields: map[string]string{"year": `"Year" is out of range`},
		},
		{
			name:   "year below the column range",
			in:     Input{Title: "Emma", Author: "Jane Austen", Year: "-2147483649"},
			fields: map[string]string{"year": `"Year" is out of range`},
		},
		{
			name:   "title too long",
			in:     Input{Title: strings.Repeat("a", 256), Author: "Jane Austen"},
			fields: map[string]string{"title": `"Title" must be at most 255 characters`},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if len(tc.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
			assert.Len(t, verr.Fields, len(tc.fields))
			for field, msg := range tc.fields {
				assert.Equal(t, msg, verr.Message(field))
			}
			assert.Equal(t, tc.in, verr.Input)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := Input{}.Validate()

	require.Error(t, err)
	assert.Equal(t,
		`book validation failed: Please provide a value for "Title"; Please provide a value for "Author"`,
		err.Error(),
	)
}

func TestValidationError_KeepsSubmittedBook(t *testing.T) {
	in := Input{Title: "", Author: "Jane Austen", Genre: "Classic", Year: "1815"}

	var verr *ValidationError
	require.ErrorAs(t, in.Validate(), &verr)

	assert.Equal(t, "Jane Austen", verr.Book.Author)
	assert.Equal(t, "1815", verr.Book.YearText())
	assert.Equal(t, "", verr.Message("genre"))
}

func TestInput_Normalize(t *testing.T) {
	in := Input{Title: "  Emma ", Author: "\tJane Austen\n", Genre: " ", Year: " 1815 "}

	assert.Equal(t, Input{Title: "Emma", Author: "Jane Austen", Genre: "", Year: "1815"}, in.Normalize())
}

func TestInput_Book(t *testing.T) {
	b := Input{Title: "Emma", Author: "Jane Austen", Year: "1815"}.Book()
	require.NotNil(t, b.Year)
	assert.Equal(t, 1815, *b.Year)

	assert.Nil(t, Input{Year: ""}.Book().Year)
	assert.Nil(t, Input{Year: "soon"}.Book().Year)
}

func TestInputFrom(t *testing.T) {
	year := 1813
	b := Book{ID: 3, Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Classic", Year: &year}

	assert.Equal(t, Input{Title: "Pride and Prejudice", Author: "Jane Austen", Genre: "Classic", Year: "1813"}, InputFrom(b))
	assert.Equal(t, "", InputFrom(Book{}).Year)
}

func TestBook_Matches(t *testing.T) {
	year := 1965
	b := Book{Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Year: &year}

	tests := []struct {
		term string
		want bool
	}{
		{"", true},
		{"dune", true},
		{"HERBERT", true},
		{"fiction", true},
		{"196", true},
		{"austen", false},
		{"1966", false},
	}
	for _, tc := range tests {
		t.Run(tc.term, func(t *testing.T) {
			assert.Equal(t, tc.want, b.Matches(tc.term))
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, TotalPages(tc.total, tc.size), "total=%d size=%d", tc.total, tc.size)
	}
}
