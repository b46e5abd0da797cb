package world

import (
	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/entity"
	"github.com/Holmiboii/ummorpg/internal/event"
	"github.com/Holmiboii/ummorpg/internal/metrics"
)

// notifier turns state machine outcomes into metrics and events. It runs
// under the world lock.
type notifier struct {
	w *World
}

func (n notifier) Transition(_ *entity.Entity, from, to entity.State) {
	metrics.StateTransitions.WithLabelValues(from.String(), to.String()).Inc()
}

func (n notifier) Died(e *entity.Entity, killerID string, expLost int64) {
	n.w.emit(event.EntityDied, e.ID, domain.EntityDiedPayload{EntityID: e.ID, KillerID: killerID, ExpLost: expLost})
}

func (n notifier) Respawned(e *entity.Entity) {
	n.w.emit(event.EntityRespawned, e.ID, domain.EntityRespawnedPayload{EntityID: e.ID, Position: e.Position})
}

func (n notifier) LevelUp(e *entity.Entity, oldLevel, newLevel int) {
	n.w.emit(event.LevelUp, e.ID, domain.LevelUpPayload{EntityID: e.ID, OldLevel: oldLevel, NewLevel: newLevel})
}
