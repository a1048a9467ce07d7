package book

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo keeps books in process memory. It backs DB_DRIVER=memory and
// tests that need a real store without a database.
type MemoryRepo struct {
	mu     sync.RWMutex
	books  map[int64]Book
	nextID int64
	now    func() time.Time
}

// NewMemoryRepo constructs a MemoryRepo seeded with the provided books.
// Seed entries without an ID are assigned one.
func NewMemoryRepo(seed ...Book) *MemoryRepo {
	r := &MemoryRepo{
		books:  make(map[int64]Book, len(seed)),
		nextID: 1,
		now:    time.Now,
	}
	for _, b := range seed {
		if b.ID == 0 {
			b.ID = r.nextID
		}
		r.books[b.ID] = b
		if b.ID >= r.nextID {
			r.nextID = b.ID + 1
		}
	}
	return r
}

func (r *MemoryRepo) Create(_ context.Context, in Input) (Book, error) {
	if err := in.Validate(); err != nil {
		return Book{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b := in.Book()
	b.ID = r.nextID
	b.CreatedAt = r.now().UTC()
	b.UpdatedAt = b.CreatedAt
	r.nextID++

	r.books[b.ID] = b
	return b, nil
}

func (r *MemoryRepo) GetByID(_ context.Context, id int64) (Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

// List filters the whole catalog, counts the matches and slices out the
// requested window, in ascending ID order.
func (r *MemoryRepo) List(_ context.Context, q Query) ([]Book, int, error) {
	r.mu.RLock()
	matches := make([]Book, 0, len(r.books))
	for _, b := range r.books {
		if b.Matches(q.Search) {
			matches = append(matches, b)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].ID < matches[j].ID
	})

	total := len(matches)
	start := min(max(q.Offset, 0), total)
	end := total
	if q.Limit > 0 {
		end = min(start+q.Limit, total)
	}
	return matches[start:end], total, nil
}

func (r *MemoryRepo) Update(_ context.Context, id int64, in Input) (Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	if err := in.Validate(); err != nil {
		return Book{}, err
	}

	b := in.Book()
	b.ID = id
	b.CreatedAt = existing.CreatedAt
	b.UpdatedAt = r.now().UTC()
	r.books[id] = b
	return b, nil
}

func (r *MemoryRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return ErrNotFound
	}
	delete(r.books, id)
	return nil
}

// Ping always succeeds.
func (r *MemoryRepo) Ping(context.Context) error {
	return nil
}

// Count returns the number of stored books.
func (r *MemoryRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.books)
}
