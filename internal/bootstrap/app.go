// Package bootstrap wires configuration, storage, the world and the HTTP
// front together and owns their lifecycle.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/Holmiboii/ummorpg/internal/catalog"
	"github.com/Holmiboii/ummorpg/internal/config"
	"github.com/Holmiboii/ummorpg/internal/database"
	"github.com/Holmiboii/ummorpg/internal/event"
	"github.com/Holmiboii/ummorpg/internal/eventlog"
	"github.com/Holmiboii/ummorpg/internal/game"
	"github.com/Holmiboii/ummorpg/internal/scheduler"
	"github.com/Holmiboii/ummorpg/internal/server"
	"github.com/Holmiboii/ummorpg/internal/sse"
	"github.com/Holmiboii/ummorpg/internal/worker"
	"github.com/Holmiboii/ummorpg/internal/world"
)

// ShutdownTimeout bounds the final save and drain
const ShutdownTimeout = 30 * time.Second

// App is a fully wired game server.
type App struct {
	cfg       *config.Config
	dbPool    *pgxpool.Pool
	publisher *event.ResilientPublisher
	world     *world.World
	game      game.Service
	eventLog  eventlog.Service
	hub       *sse.Hub
	workers   *worker.Pool
	scheduler *scheduler.Scheduler
	server    *server.Server
}

// New connects to the database, applies migrations, loads the catalog and
// builds every component. Nothing runs until Run.
func New(ctx context.Context, cfg *config.Config, clock clockwork.Clock) (*App, error) {
	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgConnectDatabase, err)
	}
	applied, err := database.Migrate(ctx, dbPool)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgMigrateDatabase, err)
	}
	slog.Info(LogMsgDatabaseReady, "migrations_applied", applied)

	cat, err := catalog.NewLoader().Load(ctx, cfg.CatalogPath)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadCatalog, err)
	}

	publisher, err := InitializeEventSystem(clock, filepath.Join(cfg.LogDir, filepath.Base(EventDefaultDeadLetterPath)))
	if err != nil {
		dbPool.Close()
		return nil, err
	}

	w := world.New(world.Config{RecoveryInterval: cfg.RecoveryInterval}, cat, clock, publisher,
		rand.New(rand.NewSource(clock.Now().UnixNano())))
	repos := InitializeRepositories(dbPool, cfg)
	svc := game.NewService(w, repos.Character)
	history := eventlog.NewService(repos.EventLog, clock, eventlog.Config{Retention: cfg.EventLogRetention})
	hub := sse.NewHub()
	workers := worker.NewPool(cfg.WorkerCount, JobQueueSize)

	return &App{
		cfg:       cfg,
		dbPool:    dbPool,
		publisher: publisher,
		world:     w,
		game:      svc,
		eventLog:  history,
		hub:       hub,
		workers:   workers,
		scheduler: scheduler.New(workers, clock),
		server: server.NewServer(server.Options{
			Port:           cfg.Port,
			APIKey:         cfg.APIKey,
			TrustedProxies: cfg.TrustedProxies,
			DB:             dbPool,
			Game:           svc,
			EventLog:       history,
			Hub:            hub,
		}),
	}, nil
}

// Run populates the world, starts the step and autosave schedules and serves
// HTTP until ctx is cancelled or the listener fails. Every online character
// is saved before Run returns.
func (a *App) Run(ctx context.Context) error {
	a.hub.Start()
	a.eventLog.Start(ctx)
	RegisterEventHandlers(ctx, a.publisher, a.hub, a.eventLog)

	placed := a.world.SpawnAll(ctx)
	slog.Info(LogMsgWorldPopulated, "spawned", placed, "catalog_version", a.world.Catalog().Version())

	a.workers.Start(ctx)
	a.scheduler.Schedule(ctx, a.cfg.TickInterval, worker.StepJob{Stepper: a.game})
	a.scheduler.Schedule(ctx, a.cfg.AutosaveInterval, worker.AutosaveJob{Saver: a.game})
	a.scheduler.Schedule(ctx, a.cfg.EventLogCleanupInterval, eventlog.CleanupJob{Service: a.eventLog})
	slog.Info(LogMsgSchedulerArmed, "tick", a.cfg.TickInterval, "autosave", a.cfg.AutosaveInterval)

	serveErr := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()
	GracefulShutdown(shutdownCtx, ShutdownComponents{
		Server:             a.server,
		Scheduler:          a.scheduler,
		Workers:            a.workers,
		Game:               a.game,
		EventLog:           a.eventLog,
		Hub:                a.hub,
		ResilientPublisher: a.publisher,
	})
	a.dbPool.Close()
	return runErr
}
