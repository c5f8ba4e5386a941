package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dev2ever/userservice/infrastructure/postgresdb"
)

// Migrate creates the schema in the database.
func Migrate(pool *pgxpool.Pool, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := postgresdb.StatusCheck(ctx, pool); err != nil {
		return fmt.Errorf("database status check failed: %w", err)
	}

	log.InfoContext(ctx, "database reachable", "step", "running migrations")

	if err := postgresdb.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	log.InfoContext(ctx, "migrations completed successfully")
	return nil
}

// Seed inserts a few development users. Safe to run repeatedly; existing
// usernames are left alone.
func Seed(pool *pgxpool.Pool, log *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	log.InfoContext(ctx, "seeding started")

	seedUsers := []pgx.NamedArgs{
		{"username": "admin", "email": "admin@example.com", "password": "changeme", "full_name": "Site Admin"},
		{"username": "demo", "email": "demo@example.com", "password": "changeme", "full_name": "Demo User"},
	}

	const q = `
	INSERT INTO users (username, email, password, full_name)
	VALUES (@username, @email, @password, @full_name)
	ON CONFLICT (username) DO NOTHING`

	for _, args := range seedUsers {
		if _, err := pool.Exec(ctx, q, args); err != nil {
			return fmt.Errorf("seeding user %q: %w", args["username"], err)
		}
	}

	log.InfoContext(ctx, "seeding completed successfully")
	return nil
}
