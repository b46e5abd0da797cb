package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Holmiboii/ummorpg/internal/config"
	"github.com/Holmiboii/ummorpg/internal/database/postgres"
	"github.com/Holmiboii/ummorpg/internal/eventlog"
	"github.com/Holmiboii/ummorpg/internal/repository"
)

// Repositories holds the postgres-backed stores used by the application.
type Repositories struct {
	Character repository.Character
	EventLog  eventlog.Repository
}

// InitializeRepositories builds the stores. Characters are read through a
// write-through snapshot cache.
func InitializeRepositories(dbPool *pgxpool.Pool, cfg *config.Config) *Repositories {
	return &Repositories{
		Character: postgres.NewCachedRepository(
			postgres.NewCharacterRepository(dbPool),
			cfg.SnapshotCacheSize,
			cfg.SnapshotCacheTTL,
		),
		EventLog: postgres.NewEventLogRepository(dbPool),
	}
}
