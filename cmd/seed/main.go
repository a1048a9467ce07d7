package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"

	"bookshelf/internal/book"
	"bookshelf/internal/config"
	"bookshelf/internal/ingest"
	"bookshelf/internal/platform/openlibrary"
	"bookshelf/internal/storage"
)

var (
	genres  = []string{"Fiction", "Science Fiction", "History", "Science", "Technology", "Romance", "Mystery", "Biography", "Philosophy", "Art"}
	authors = []string{"Jane Austen", "Frank Herbert", "Ursula K. Le Guin", "Toni Morrison", "Haruki Murakami", "Chinua Achebe", "Isabel Allende", "Kazuo Ishiguro"}
	words   = []string{
		"Adventure", "Mystery", "Journey", "Discovery", "Secrets", "Dreams", "Hope",
		"Love", "War", "Peace", "Science", "Nature", "Technology", "History", "Future",
		"Past", "Present", "Reality", "Imagination", "Wisdom", "Life", "Death",
		"Light", "Darkness", "World", "Universe", "Time", "Space", "Mind", "Soul",
	}
)

func main() {
	var (
		source    = flag.String("source", "generated", "Book source: generated, openlibrary")
		count     = flag.Int("count", 50, "Number of books to insert (generated) or catalog size to reach (openlibrary)")
		seed      = flag.Int64("seed", 1, "Random seed for generated books")
		subjects  = flag.String("subjects", "fiction,science_fiction,history,fantasy,mystery", "Comma separated Open Library subjects")
		userAgent = flag.String("user-agent", "bookshelf-seed/1.0", "User-Agent sent to Open Library")
	)
	flag.Parse()

	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.DBDriver == config.DriverMemory {
		log.Fatal("seeding the memory driver has no lasting effect; set DB_DRIVER to postgres or sqlite")
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var inserted int
	switch *source {
	case "generated":
		log.Printf("Generating %d books...", *count)
		inserted, err = seedBooks(ctx, book.NewCommandService(store.Repo), *count, rand.New(rand.NewSource(*seed)))
	case "openlibrary":
		log.Printf("Importing from Open Library until the catalog holds %d books...", *count)
		client := openlibrary.NewClient(*userAgent, 1, 3)
		svc := ingest.NewService(client, store.Repo, ingest.Config{
			BooksMax: *count,
			Subjects: strings.Split(*subjects, ","),
		})
		var run ingest.Run
		run, err = svc.Run(ctx)
		inserted = run.BooksImported
	default:
		err = fmt.Errorf("unknown source %q", *source)
	}
	if err != nil {
		store.Close()
		log.Fatalf("Failed to insert books: %v", err)
	}
	log.Printf("Successfully inserted %d books!", inserted)

	_, total, err := store.Repo.List(ctx, book.Query{Limit: 1})
	if err != nil {
		store.Close()
		log.Fatalf("Failed to count books: %v", err)
	}
	log.Printf("Total books in database: %d", total)
}

// seedBooks creates count generated books and reports how many were stored.
func seedBooks(ctx context.Context, svc *book.CommandService, count int, rng *rand.Rand) (int, error) {
	for i := 0; i < count; i++ {
		if _, err := svc.Create(ctx, generateInput(i, rng)); err != nil {
			return i, fmt.Errorf("book %d: %w", i+1, err)
		}
		if (i+1)%100 == 0 {
			log.Printf("Inserted %d/%d books", i+1, count)
		}
	}
	return count, nil
}

func generateInput(i int, rng *rand.Rand) book.Input {
	in := book.Input{
		Title:  fmt.Sprintf("Book Title %d - %s", i+1, pick(rng, words)),
		Author: pick(rng, authors),
		Genre:  pick(rng, genres),
	}
	// Roughly one book in ten has no known year.
	if rng.Intn(10) > 0 {
		in.Year = strconv.Itoa(1950 + rng.Intn(75))
	}
	return in
}

func pick(rng *rand.Rand, from []string) string {
	return from[rng.Intn(len(from))]
}
