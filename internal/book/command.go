package book

import (
	"context"
	"errors"
	"strconv"
)

// CommandService creates, reads, updates and deletes single books.
type CommandService struct {
	repo Repository
}

// NewCommandService creates a new command service.
func NewCommandService(repo Repository) *CommandService {
	return &CommandService{repo: repo}
}

// ParseID parses a path identifier. Identifiers that cannot name a stored
// book are reported as ErrNotFound.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, ErrNotFound
	}
	return id, nil
}

// Create stores a new book. Rejected fields are returned as *ValidationError.
func (s *CommandService) Create(ctx context.Context, in Input) (Book, error) {
	return s.repo.Create(ctx, in.Normalize())
}

// Get returns the book with the given id or ErrNotFound.
func (s *CommandService) Get(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces the fields of an existing book. A missing book yields
// ErrNotFound before any validation happens. On *ValidationError the rejected
// Book carries id and the submitted fields, not the stored ones.
func (s *CommandService) Update(ctx context.Context, id int64, in Input) (Book, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return Book{}, err
	}

	b, err := s.repo.Update(ctx, id, in.Normalize())
	var verr *ValidationError
	if errors.As(err, &verr) {
		verr.Book.ID = id
	}
	return b, err
}

// Delete removes the book with the given id or returns ErrNotFound.
func (s *CommandService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
