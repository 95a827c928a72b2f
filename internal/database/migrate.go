package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

var ErrMigrationsNotFound = errors.New("migrations directory not found")

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Migrate applies the SQL files in dir against dbUrl. ErrNoChange is not an error.
func Migrate(dbUrl string, dir string, direction Direction) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absDir), dbUrl)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	defer m.Close()

	switch direction {
	case Down:
		err = m.Down()
	case Up:
		err = m.Up()
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate %s: %w", direction, err)
	}
	return nil
}

// FindMigrationsDir returns configured when set, otherwise the first "migrations"
// directory found walking up from the working directory or next to the executable.
func FindMigrationsDir(configured string) (string, error) {
	if configured != "" {
		if isDir(configured) {
			return configured, nil
		}
		return "", fmt.Errorf("%w: %s", ErrMigrationsNotFound, configured)
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, walkUp(cwd, 6)...)
	}
	if exePath, err := os.Executable(); err == nil {
		candidates = append(candidates, walkUp(filepath.Dir(exePath), 3)...)
	}

	for _, candidate := range candidates {
		if isDir(candidate) {
			return candidate, nil
		}
	}
	return "", ErrMigrationsNotFound
}

func walkUp(start string, depth int) []string {
	var out []string
	current := start
	for i := 0; i < depth; i++ {
		out = append(out, filepath.Join(current, "migrations"))
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return out
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
