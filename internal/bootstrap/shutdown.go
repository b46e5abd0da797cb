package bootstrap

import (
	"context"
	"log/slog"

	"github.com/Holmiboii/ummorpg/internal/event"
	"github.com/Holmiboii/ummorpg/internal/eventlog"
	"github.com/Holmiboii/ummorpg/internal/game"
	"github.com/Holmiboii/ummorpg/internal/scheduler"
	"github.com/Holmiboii/ummorpg/internal/server"
	"github.com/Holmiboii/ummorpg/internal/sse"
	"github.com/Holmiboii/ummorpg/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	Workers            *worker.Pool
	Game               game.Service
	EventLog           eventlog.Service
	Hub                *sse.Hub
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops the components in dependency order:
// 1. Event stream hub (ends open streams so the server can drain)
// 2. HTTP server (stop accepting new requests)
// 3. Scheduler and workers (no further steps once the running one ends)
// 4. Game service (final save of every online character)
// 5. Event log and publisher (flush buffered events and pending retries)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Hub != nil {
		components.Hub.Stop()
	}

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.Workers != nil {
		components.Workers.Stop()
	}

	if components.Game != nil {
		shutdownService(ctx, ServiceNameGame, components.Game)
	}

	if components.EventLog != nil {
		shutdownService(ctx, ServiceNameEventLog, components.EventLog)
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(LogMsgServiceShutdownFailed, "service", name, "error", err)
	}
}
