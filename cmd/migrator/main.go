package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/localtrades/contractor-directory/internal/config"
)

const (
	defaultMigrationsPath  = "./migrations"
	defaultMigrationsTable = "schema_migrations"
)

// The migrator reuses the service config for connection settings and takes
// its own knobs from the environment. Usage: migrator [up|down].
func main() {
	databaseURL, sourceURL, err := resolve()
	if err != nil {
		log.Fatalf("migrator: %v", err)
	}

	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		log.Fatalf("migrator: failed to open migration source: %v", err)
	}

	var cmd string
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "down":
		if err := down(m); err != nil {
			log.Fatal(err)
		}

		log.Println("schema rolled back")
	case "up", "":
		if err := up(m); err != nil {
			log.Fatal(err)
		}

		log.Println("schema is up to date")
	default:
		log.Fatalf("migrator: unknown command %q (want up or down)", cmd)
	}
}

func resolve() (databaseURL, sourceURL string, err error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return "", "", errors.New("CONFIG_PATH is not set")
	}

	var cfg config.Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return "", "", fmt.Errorf("failed to read config %q: %w", configPath, err)
	}

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = defaultMigrationsPath
	}

	migrationsTable := os.Getenv("MIGRATIONS_TABLE")
	if migrationsTable == "" {
		migrationsTable = defaultMigrationsTable
	}

	databaseURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&x-migrations-table=%s",
		cfg.Postgres.Username,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.Database,
		migrationsTable,
	)

	return databaseURL, "file://" + migrationsPath, nil
}

func up(m *migrate.Migrate) error {
	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Println("no new migrations to apply")
			return nil
		}

		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

func down(m *migrate.Migrate) error {
	if err := m.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return errors.New("nothing to roll back")
		}

		return fmt.Errorf("failed to roll back migrations: %w", err)
	}

	return nil
}
