// Package ingest imports books from Open Library into the catalog.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"bookshelf/internal/book"
	"bookshelf/internal/platform/openlibrary"
)

const lookupPageSize = 50

type Config struct {
	// BooksMax is the catalog size at which importing stops.
	BooksMax int
	Subjects []string
	// BatchSize is the number of works requested per subject search.
	BatchSize int
}

type OpenLibraryClient interface {
	SearchBooks(ctx context.Context, subject string, limit int) (*openlibrary.SearchResponse, error)
}

// Run summarises one import.
type Run struct {
	BooksFetched  int
	BooksImported int
	BooksSkipped  int
	StartedAt     time.Time
	FinishedAt    time.Time
}

type Service struct {
	olClient OpenLibraryClient
	repo     book.Repository
	commands *book.CommandService
	cfg      Config
}

func NewService(olClient OpenLibraryClient, repo book.Repository, cfg Config) *Service {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &Service{
		olClient: olClient,
		repo:     repo,
		commands: book.NewCommandService(repo),
		cfg:      cfg,
	}
}

// Run searches each subject in turn and stores works not already in the
// catalog until it holds BooksMax books. Works without a title or author
// are skipped.
func (s *Service) Run(ctx context.Context) (Run, error) {
	run := Run{StartedAt: time.Now()}
	defer func() {
		run.FinishedAt = time.Now()
		log.Printf("ingest finished fetched=%d imported=%d skipped=%d duration_ms=%d",
			run.BooksFetched, run.BooksImported, run.BooksSkipped, run.FinishedAt.Sub(run.StartedAt).Milliseconds())
	}()

	_, currentBooks, err := s.repo.List(ctx, book.Query{Limit: 1})
	if err != nil {
		return run, fmt.Errorf("count books: %w", err)
	}
	neededBooks := s.cfg.BooksMax - currentBooks
	if neededBooks <= 0 {
		log.Println("Ingestion targets already met. Skipping.")
		return run, nil
	}

	for _, subject := range s.cfg.Subjects {
		if run.BooksImported >= neededBooks {
			break
		}

		searchLimit := s.cfg.BatchSize
		if remaining := neededBooks - run.BooksImported; remaining*2 < searchLimit {
			searchLimit = remaining * 2
		}
		searchRes, err := s.olClient.SearchBooks(ctx, subject, searchLimit)
		if err != nil {
			return run, fmt.Errorf("search failed for %s: %w", subject, err)
		}
		run.BooksFetched += len(searchRes.Docs)

		for _, doc := range searchRes.Docs {
			if run.BooksImported >= neededBooks {
				break
			}
			imported, err := s.importDoc(ctx, subject, doc)
			if err != nil {
				return run, err
			}
			if imported {
				run.BooksImported++
			} else {
				run.BooksSkipped++
			}
		}
	}
	return run, nil
}

func (s *Service) importDoc(ctx context.Context, subject string, doc openlibrary.SearchDoc) (bool, error) {
	in := inputFromDoc(subject, doc)

	exists, err := s.exists(ctx, in)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	_, err = s.commands.Create(ctx, in)
	var verr *book.ValidationError
	if errors.As(err, &verr) {
		log.Printf("ingest skipped key=%s reason=%q", doc.Key, verr.Error())
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store %s: %w", doc.Key, err)
	}
	return true, nil
}

// exists reports whether a book with the same title and author is stored.
func (s *Service) exists(ctx context.Context, in book.Input) (bool, error) {
	in = in.Normalize()
	if in.Title == "" {
		return false, nil
	}
	// The search is a substring match, so walk every page of it.
	for offset := 0; ; offset += lookupPageSize {
		matches, total, err := s.repo.List(ctx, book.Query{Search: in.Title, Limit: lookupPageSize, Offset: offset})
		if err != nil {
			return false, fmt.Errorf("look up %q: %w", in.Title, err)
		}
		for _, b := range matches {
			if strings.EqualFold(b.Title, in.Title) && strings.EqualFold(b.Author, in.Author) {
				return true, nil
			}
		}
		if len(matches) == 0 || offset+len(matches) >= total {
			return false, nil
		}
	}
}

func inputFromDoc(subject string, doc openlibrary.SearchDoc) book.Input {
	in := book.Input{
		Title: doc.Title,
		Genre: formatSubject(subject),
	}
	if len(doc.AuthorNames) > 0 {
		in.Author = doc.AuthorNames[0]
	}
	if doc.FirstPublishYear != 0 {
		in.Year = strconv.Itoa(doc.FirstPublishYear)
	}
	return in
}

// formatSubject turns "science_fiction" into "Science Fiction".
func formatSubject(subject string) string {
	words := strings.Fields(strings.ReplaceAll(subject, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
