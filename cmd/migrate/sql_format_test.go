package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSQLMigrations_HaveGooseDirectives(t *testing.T) {
	for _, dialect := range []string{"postgres", "sqlite"} {
		migrationsDir := filepath.Join(repoRoot(t), "db", "migrations", dialect)

		entries, err := os.ReadDir(migrationsDir)
		if err != nil {
			t.Fatalf("ReadDir(%s): %v", migrationsDir, err)
		}

		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
				continue
			}
			b, err := os.ReadFile(filepath.Join(migrationsDir, e.Name()))
			if err != nil {
				t.Fatalf("ReadFile(%s): %v", e.Name(), err)
			}
			s := string(b)
			if !strings.Contains(s, "-- +goose Up") {
				t.Fatalf("%s/%s missing '-- +goose Up'", dialect, e.Name())
			}
			if !strings.Contains(s, "-- +goose Down") {
				t.Fatalf("%s/%s missing '-- +goose Down'", dialect, e.Name())
			}
		}
	}
}

func TestSQLMigrations_SameVersionsPerDialect(t *testing.T) {
	names := func(dialect string) []string {
		entries, err := os.ReadDir(filepath.Join(repoRoot(t), "db", "migrations", dialect))
		if err != nil {
			t.Fatalf("ReadDir: %v", err)
		}
		var out []string
		for _, e := range entries {
			out = append(out, e.Name())
		}
		return out
	}

	pg, lite := names("postgres"), names("sqlite")
	if strings.Join(pg, ",") != strings.Join(lite, ",") {
		t.Fatalf("postgres migrations %v differ from sqlite migrations %v", pg, lite)
	}
}
