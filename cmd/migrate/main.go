// Command migrate manages the database schema outside the server process.
//
//	migrate up       apply pending migrations
//	migrate down     revert the latest migration
//	migrate status   list migrations and their state
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Holmiboii/ummorpg/internal/config"
	"github.com/Holmiboii/ummorpg/internal/database"
	"github.com/Holmiboii/ummorpg/internal/logger"
)

const usage = "usage: migrate up|down|status"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) != 1 {
		return errors.New(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger.Init(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, "ummorpg-migrate", "", cfg.Environment, false))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), 1, time.Minute, time.Minute)
	if err != nil {
		return err
	}
	defer pool.Close()

	switch args[0] {
	case "up":
		_, err = database.Migrate(ctx, pool)
		return err
	case "down":
		return database.Rollback(ctx, pool)
	case "status":
		statuses, err := database.MigrationStatus(ctx, pool)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tFILE")
		for _, s := range statuses {
			applied := "-"
			if !s.AppliedAt.IsZero() {
				applied = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, s.Source.Path)
		}
		return tw.Flush()
	default:
		return errors.New(usage)
	}
}
