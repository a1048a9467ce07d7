package book

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemoryRepo_Seed(t *testing.T) {
	repo := NewMemoryRepo(
		Book{ID: 5, Title: "Five", Author: "A"},
		Book{Title: "No ID", Author: "B"},
	)

	created, err := repo.Create(context.Background(), Input{Title: "Next", Author: "C"})
	require.NoError(t, err)

	assert.Equal(t, 3, repo.Count())
	assert.Equal(t, int64(7), created.ID)
}

func TestMemoryRepo_Timestamps(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return clock }

	b, err := repo.Create(ctx, Input{Title: "Emma", Author: "Jane Austen"})
	require.NoError(t, err)
	assert.Equal(t, clock, b.CreatedAt)
	assert.Equal(t, clock, b.UpdatedAt)

	clock = clock.Add(time.Hour)
	updated, err := repo.Update(ctx, b.ID, Input{Title: "Emma", Author: "J. Austen"})
	require.NoError(t, err)
	assert.Equal(t, b.CreatedAt, updated.CreatedAt)
	assert.Equal(t, clock, updated.UpdatedAt)
}

func TestMemoryRepo_ListOrderAndWindow(t *testing.T) {
	repo := NewMemoryRepo(numberedBooks(12)...)

	books, total, err := repo.List(context.Background(), Query{Limit: 5, Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, books, 2)
	assert.Equal(t, int64(11), books[0].ID)
	assert.Equal(t, int64(12), books[1].ID)

	books, _, err = repo.List(context.Background(), Query{Offset: 50, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestMemoryRepo_ConcurrentCreate(t *testing.T) {
	repo := NewMemoryRepo()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = repo.Create(context.Background(), Input{Title: "T", Author: "A"})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, repo.Count())
	_, total, err := repo.List(context.Background(), Query{})
	require.NoError(t, err)
	assert.Equal(t, 50, total)
}

func TestMemoryRepo_SearchFoldsUnicodeCase(t *testing.T) {
	repo := NewMemoryRepo(Book{Title: "Über Alles", Author: "Émile Zola"})

	for _, term := range []string{"alles", "ZOLA", "über", "émile"} {
		_, total, err := repo.List(context.Background(), Query{Search: term, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 1, total, term)
	}
}
