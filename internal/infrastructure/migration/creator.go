package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MigrationFile is the up/down pair produced for one schema change
type MigrationFile struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

// CreateMigration writes an empty up/down pair into migrationsDir. The
// version prefix is the creation time in YYYYMMDDHHMMSS form so files sort
// in apply order.
func CreateMigration(migrationsDir, name, description string) (*MigrationFile, error) {
	if err := os.MkdirAll(migrationsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	now := time.Now()
	version := now.Format("20060102150405")
	base := version + "_" + sanitizeName(name)

	mf := &MigrationFile{
		Version:  version,
		Name:     name,
		UpPath:   filepath.Join(migrationsDir, base+".up.sql"),
		DownPath: filepath.Join(migrationsDir, base+".down.sql"),
	}

	upStub := migrationStub(name, description, now, false)
	if err := os.WriteFile(mf.UpPath, []byte(upStub), 0644); err != nil {
		return nil, fmt.Errorf("failed to create up migration: %w", err)
	}

	downStub := migrationStub(name, description, now, true)
	if err := os.WriteFile(mf.DownPath, []byte(downStub), 0644); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("failed to create down migration: %w", err)
	}

	return mf, nil
}

func migrationStub(name, description string, createdAt time.Time, rollback bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "-- Migration: %s", name)
	if rollback {
		b.WriteString(" (Rollback)")
	}
	fmt.Fprintf(&b, "\n-- Created: %s\n", createdAt.Format(time.RFC3339))
	if description != "" {
		if rollback {
			fmt.Fprintf(&b, "-- Description: Rollback for %s\n", description)
		} else {
			fmt.Fprintf(&b, "-- Description: %s\n", description)
		}
	}
	if rollback {
		b.WriteString("\n-- Write your DOWN migration SQL here\n")
	} else {
		b.WriteString("\n-- Write your UP migration SQL here\n")
	}
	return b.String()
}

// sanitizeName lowercases a migration name and squeezes everything that is
// not alphanumeric into single underscores
func sanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, c := range strings.ToLower(name) {
		switch {
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == ' ' || c == '-' || c == '_':
			s := b.String()
			if s != "" && !strings.HasSuffix(s, "_") {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ListMigrations returns the base names of the migration pairs in a
// directory, sorted by version. A missing directory is treated as empty.
func ListMigrations(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	migrations := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if base, ok := strings.CutSuffix(entry.Name(), ".up.sql"); ok {
			migrations = append(migrations, base)
		}
	}
	sort.Strings(migrations)

	return migrations, nil
}
