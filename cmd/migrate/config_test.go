package main

import (
	"os"
	"testing"
)

func TestMigrationsDir_EnvOverride(t *testing.T) {
	os.Setenv("MIGRATIONS_DIR", "/custom/migrations")
	t.Cleanup(func() { _ = os.Unsetenv("MIGRATIONS_DIR") })

	if got := migrationsDir("postgres"); got != "/custom/migrations" {
		t.Fatalf("expected MIGRATIONS_DIR override, got %q", got)
	}
}

func TestMigrationsDir_Default(t *testing.T) {
	_ = os.Unsetenv("MIGRATIONS_DIR")

	tests := map[string]string{
		"postgres": "db/migrations/postgres",
		"sqlite":   "db/migrations/sqlite",
	}
	for driver, want := range tests {
		if got := migrationsDir(driver); got != want {
			t.Fatalf("migrationsDir(%q) = %q, want %q", driver, got, want)
		}
	}
}
