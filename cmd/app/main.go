// Command app runs the game server.
//
// @title          ummorpg API
// @version        1.0
// @description    Character sessions, commands and the live event stream of the simulation.
//
// @BasePath  /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/Holmiboii/ummorpg/internal/bootstrap"
	"github.com/Holmiboii/ummorpg/internal/config"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if cfg.Environment != "dev" {
		warnings, err := config.ValidateEnvWithWarnings()
		if err != nil {
			return err
		}
		for _, w := range warnings {
			slog.Warn(w)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, clockwork.NewRealClock())
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
