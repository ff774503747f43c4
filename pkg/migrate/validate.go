package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var sqlMigrationName = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

// ValidateDir checks every .sql file in dir for a well-formed versioned name,
// a unique version, and the goose Up/Down annotations.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	seen := map[string]string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		if err := validateMigrationFile(dir, e.Name(), seen); err != nil {
			return err
		}
	}
	return nil
}

func validateMigrationFile(dir, name string, seen map[string]string) error {
	m := sqlMigrationName.FindStringSubmatch(name)
	if m == nil {
		return fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
	}

	version := m[1]
	if prev, ok := seen[version]; ok {
		return fmt.Errorf("duplicate migration version %s in %q and %q", version, prev, name)
	}
	seen[version] = name

	full := filepath.Join(dir, name)
	b, err := os.ReadFile(full)
	if err != nil {
		return fmt.Errorf("read file %q: %w", full, err)
	}

	txt := string(b)
	for _, marker := range []string{"-- +goose Up", "-- +goose Down"} {
		if !strings.Contains(txt, marker) {
			return fmt.Errorf("migration %q missing %q", name, marker)
		}
	}
	return nil
}
