package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/Holmiboii/ummorpg/internal/logger"
)

//go:embed migrations/*.sql
var migrations embed.FS

// withProvider runs fn against a goose provider over the embedded migrations.
func withProvider(pool *pgxpool.Pool, fn func(*goose.Provider) error) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLoadMigrations, err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, db, sub)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLoadMigrations, err)
	}
	return fn(provider)
}

// Migrate applies every pending migration and returns how many ran.
func Migrate(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	var results []*goose.MigrationResult
	err := withProvider(pool, func(p *goose.Provider) error {
		var err error
		results, err = p.Up(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
	}

	log := logger.FromContext(ctx)
	for _, r := range results {
		log.Info(LogMsgMigrationApplied, "version", r.Source.Version, "duration", r.Duration)
	}
	if len(results) == 0 {
		log.Info(LogMsgSchemaUpToDate)
	}
	return len(results), nil
}

// Rollback reverts the most recently applied migration.
func Rollback(ctx context.Context, pool *pgxpool.Pool) error {
	return withProvider(pool, func(p *goose.Provider) error {
		r, err := p.Down(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMigrate, err)
		}
		logger.FromContext(ctx).Info(LogMsgMigrationReverted, "version", r.Source.Version, "duration", r.Duration)
		return nil
	})
}

// MigrationStatus lists every known migration with its applied state.
func MigrationStatus(ctx context.Context, pool *pgxpool.Pool) ([]*goose.MigrationStatus, error) {
	var statuses []*goose.MigrationStatus
	err := withProvider(pool, func(p *goose.Provider) error {
		var err error
		statuses, err = p.Status(ctx)
		return err
	})
	return statuses, err
}
