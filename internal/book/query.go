package book

import (
	"context"
	"fmt"
	"math"
)

// QueryService answers paginated catalog searches.
type QueryService struct {
	repo Repository
}

// NewQueryService creates a new query service.
func NewQueryService(repo Repository) *QueryService {
	return &QueryService{repo: repo}
}

// List returns page number page of the books matching search. Pages start at
// 1; anything lower is treated as the first page. A page past the end yields
// no books.
func (s *QueryService) List(ctx context.Context, search string, page int) (Page, error) {
	if page < 1 {
		page = 1
	}

	// Pages whose offset would overflow lie past any store's last row.
	offset := math.MaxInt
	if page-1 <= math.MaxInt/PageSize {
		offset = (page - 1) * PageSize
	}

	books, total, err := s.repo.List(ctx, Query{
		Search: search,
		Limit:  PageSize,
		Offset: offset,
	})
	if err != nil {
		return Page{}, fmt.Errorf("list books: %w", err)
	}

	return Page{
		Books:      books,
		Search:     search,
		Page:       page,
		Total:      total,
		TotalPages: TotalPages(total, PageSize),
	}, nil
}
