// migrate applies the schema migrations for the invoice database.
//
// Usage: migrate [-path dir] <up|down|steps N|version>
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"invoxd/internal/config"
)

func main() {
	path := flag.String("path", "db/migrations", "directory holding the migration files")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(*path, flag.Args(), log); err != nil {
		log.Error("migrate failed", "error", err)
		os.Exit(1)
	}
}

func run(path string, args []string, log *slog.Logger) error {
	if len(args) < 1 {
		return errors.New("usage: migrate [-path dir] <up|down|steps N|version>")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	m, err := migrate.New("file://"+path, cfg.DB.DSN())
	if err != nil {
		return fmt.Errorf("open migrations at %s: %w", path, err)
	}
	defer m.Close()

	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("up: %w", err)
		}
		log.Info("migrations applied")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("down: %w", err)
		}
		log.Info("migrations reverted")

	case "steps":
		if len(args) < 2 {
			return errors.New("steps requires a number argument")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid steps argument %q: %w", args[1], err)
		}
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("steps: %w", err)
		}
		log.Info("migration steps applied", "steps", n)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("version: %w", err)
		}
		log.Info("schema version", "version", version, "dirty", dirty)

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}
