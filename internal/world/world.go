// Package world owns the entity population and advances it in discrete
// steps. Transport goroutines only append commands to the inbox; Step drains
// the inbox and runs every state machine under one lock, so both parties of
// a trade are consistent while it executes.
package world

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/Holmiboii/ummorpg/internal/catalog"
	"github.com/Holmiboii/ummorpg/internal/crafting"
	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/entity"
	"github.com/Holmiboii/ummorpg/internal/event"
	"github.com/Holmiboii/ummorpg/internal/inventory"
	"github.com/Holmiboii/ummorpg/internal/logger"
	"github.com/Holmiboii/ummorpg/internal/metrics"
)

// ErrInboxFull is returned by Submit when the inbox is at capacity.
var ErrInboxFull = errors.New(ErrMsgInboxFull)

// Config tunes the step driver.
type Config struct {
	RecoveryInterval time.Duration
	MaxInbox         int
}

type envelope struct {
	entityID string
	cmd      Command
}

// population resolves weak entity references.
type population map[string]*entity.Entity

func (p population) Lookup(id string) (*entity.Entity, bool) {
	if id == "" {
		return nil, false
	}
	e, ok := p[id]
	return e, ok
}

// View is the externally visible state of one entity.
type View struct {
	domain.CharacterSnapshot
	State    string `json:"state"`
	TargetID string `json:"target_id,omitempty"`
}

// World is the authoritative entity population.
type World struct {
	cfg     Config
	clock   clockwork.Clock
	catalog *catalog.Catalog
	bus     event.Bus
	crafter *crafting.Resolver
	nav     entity.StraightLine

	mu           sync.Mutex
	entities     population
	machine      *entity.Machine
	origins      map[string]domain.Spawn
	pending      []event.Event
	now          time.Time
	lastStep     time.Time
	lastRecovery time.Time

	inboxMu sync.Mutex
	inbox   []envelope
	online  map[string]struct{}
}

// New creates an empty world. rng drives combat rolls.
func New(cfg Config, c *catalog.Catalog, clock clockwork.Clock, bus event.Bus, rng *rand.Rand) *World {
	if cfg.RecoveryInterval <= 0 {
		cfg.RecoveryInterval = DefaultRecoveryInterval
	}
	if cfg.MaxInbox <= 0 {
		cfg.MaxInbox = DefaultMaxInbox
	}
	w := &World{
		cfg:      cfg,
		clock:    clock,
		catalog:  c,
		bus:      bus,
		crafter:  crafting.NewResolver(c, c.Player().CraftMaxIngredients),
		entities: population{},
		origins:  map[string]domain.Spawn{},
		online:   map[string]struct{}{},
		now:      clock.Now(),
	}
	w.machine = entity.NewMachine(w.entities, w.nav, notifier{w: w}, rng)
	return w
}

// Catalog returns the template catalog the world was built from.
func (w *World) Catalog() *catalog.Catalog {
	return w.catalog
}

// Clock returns the world clock.
func (w *World) Clock() clockwork.Clock {
	return w.clock
}

// SpawnAll places a monster or NPC for every catalog spawn and returns how
// many were placed.
func (w *World) SpawnAll(ctx context.Context) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	placed := 0
	for _, s := range w.catalog.Spawns() {
		if _, ok := w.spawn(s); ok {
			placed++
			continue
		}
		logger.FromContext(ctx).Warn(LogMsgSpawnSkipped, "kind", s.Kind, "template", s.Template)
	}
	w.updateGauges()
	return placed
}

func (w *World) spawn(s domain.Spawn) (*entity.Entity, bool) {
	id := uuid.NewString()
	var e *entity.Entity
	switch s.Kind {
	case domain.KindMonster:
		t, ok := w.catalog.Monster(s.Template)
		if !ok {
			return nil, false
		}
		e = entity.NewMonster(id, t, s.Position, w.catalog)
	case domain.KindNpc:
		t, ok := w.catalog.Npc(s.Template)
		if !ok {
			return nil, false
		}
		e = entity.NewNpc(id, t, s.Position, w.catalog)
	default:
		return nil, false
	}
	w.entities[id] = e
	w.origins[id] = s
	return e, true
}

// AddPlayer puts a logged-in player into the world.
func (w *World) AddPlayer(e *entity.Entity) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.entities[e.ID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyOnline, e.ID)
	}
	w.observe(e)
	w.entities[e.ID] = e
	w.updateGauges()

	w.inboxMu.Lock()
	w.online[e.ID] = struct{}{}
	w.inboxMu.Unlock()
	return nil
}

// RemovePlayer takes a player out of the world and returns its final
// snapshot. Queued commands for the player are dropped.
func (w *World) RemovePlayer(id string) (domain.CharacterSnapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.entities.Lookup(id)
	if !ok || !e.IsPlayer() {
		return domain.CharacterSnapshot{}, fmt.Errorf("%w: %s", domain.ErrNotOnline, id)
	}
	snap := e.Snapshot(w.clock.Now())
	delete(w.entities, id)
	w.updateGauges()

	w.inboxMu.Lock()
	delete(w.online, id)
	kept := w.inbox[:0]
	for _, env := range w.inbox {
		if env.entityID != id {
			kept = append(kept, env)
		}
	}
	w.inbox = kept
	w.inboxMu.Unlock()
	return snap, nil
}

// Online reports whether a player is in the world.
func (w *World) Online(id string) bool {
	w.inboxMu.Lock()
	defer w.inboxMu.Unlock()
	_, ok := w.online[id]
	return ok
}

// View returns the current state of an entity.
func (w *World) View(id string) (View, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.entities.Lookup(id)
	if !ok {
		return View{}, fmt.Errorf("%w: %s", domain.ErrNotOnline, id)
	}
	return View{CharacterSnapshot: e.Snapshot(w.clock.Now()), State: e.State.String(), TargetID: e.TargetID}, nil
}

// Snapshots returns a consistent snapshot of every player, ordered by id.
func (w *World) Snapshots() []domain.CharacterSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.clock.Now()
	var snaps []domain.CharacterSnapshot
	for _, id := range w.sortedIDs() {
		if e := w.entities[id]; e.IsPlayer() {
			snaps = append(snaps, e.Snapshot(now))
		}
	}
	return snaps
}

// Submit queues a command for the next step. Commands are validated when
// they are applied, not here.
func (w *World) Submit(entityID string, cmd Command) error {
	w.inboxMu.Lock()
	defer w.inboxMu.Unlock()

	if _, ok := w.online[entityID]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotOnline, entityID)
	}
	if len(w.inbox) >= w.cfg.MaxInbox {
		return fmt.Errorf("%w: %s", ErrInboxFull, cmd.Kind())
	}
	w.inbox = append(w.inbox, envelope{entityID: entityID, cmd: cmd})
	return nil
}

func (w *World) drain() []envelope {
	w.inboxMu.Lock()
	defer w.inboxMu.Unlock()
	cmds := w.inbox
	w.inbox = nil
	return cmds
}

// Step advances the world once: queued commands are applied in arrival
// order, moving entities advance, the recovery tick runs when due, every
// state machine steps in id order and expired corpses are removed. Events
// raised during the step are published after the lock is released.
func (w *World) Step(ctx context.Context) {
	start := time.Now()

	w.mu.Lock()
	now := w.clock.Now()
	w.now = now
	dt := time.Duration(0)
	if !w.lastStep.IsZero() && now.After(w.lastStep) {
		dt = now.Sub(w.lastStep)
	}
	w.lastStep = now

	for _, env := range w.drain() {
		w.apply(env, now)
	}

	ids := w.sortedIDs()
	for _, id := range ids {
		if e := w.entities[id]; e.State == entity.StateMoving {
			w.nav.Advance(e, dt)
		}
	}

	if w.lastRecovery.IsZero() {
		w.lastRecovery = now
	} else if now.Sub(w.lastRecovery) >= w.cfg.RecoveryInterval {
		for _, id := range ids {
			w.entities[id].Recover(now)
		}
		w.lastRecovery = now
	}

	for _, id := range ids {
		w.machine.Step(w.entities[id], now)
	}

	w.despawnCorpses(ctx, now)
	w.updateGauges()

	events := w.pending
	w.pending = nil
	w.mu.Unlock()

	w.publish(ctx, events)
	metrics.StepDuration.Observe(time.Since(start).Seconds())
}

func (w *World) apply(env envelope, now time.Time) {
	outcome := metrics.OutcomeRejected
	if e, ok := w.entities.Lookup(env.entityID); ok && env.cmd.apply(w, e, now) {
		outcome = metrics.OutcomeApplied
	}
	metrics.Commands.WithLabelValues(env.cmd.Kind(), outcome).Inc()
}

// despawnCorpses removes monsters dead for longer than their corpse
// duration and replaces spawn-placed ones with a fresh monster.
func (w *World) despawnCorpses(ctx context.Context, now time.Time) {
	for _, id := range w.sortedIDs() {
		e := w.entities[id]
		if e.Kind != domain.KindMonster || e.State != entity.StateDead || now.Sub(e.DiedAt) < e.CorpseDuration {
			continue
		}
		delete(w.entities, id)
		origin, ok := w.origins[id]
		delete(w.origins, id)
		logger.FromContext(ctx).Debug(LogMsgCorpseDespawned, "entity_id", id, "template", e.Template)
		if ok {
			w.spawn(origin)
		}
	}
}

func (w *World) sortedIDs() []string {
	ids := make([]string, 0, len(w.entities))
	for id := range w.entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (w *World) updateGauges() {
	counts := map[domain.EntityKind]int{domain.KindPlayer: 0, domain.KindMonster: 0, domain.KindNpc: 0}
	for _, e := range w.entities {
		counts[e.Kind]++
	}
	for kind, n := range counts {
		metrics.OnlineEntities.WithLabelValues(string(kind)).Set(float64(n))
	}
}

// observe wires a player's stores to the event stream.
func (w *World) observe(e *entity.Entity) {
	id := e.ID
	e.Equipment().Subscribe(func(c inventory.Change) {
		w.emit(event.EquipmentChanged, id, domain.EquipmentChangedPayload{EntityID: id, Index: c.Index, Old: c.Old, New: c.New})
	})
	e.Inventory().OnViolation(w.reporter(id, ComponentInventory))
	e.Equipment().OnViolation(w.reporter(id, ComponentEquipment))
}

// reporter returns a violation sink tagged with the entity and component.
func (w *World) reporter(entityID, component string) func(string) {
	return func(detail string) {
		w.emit(event.InvariantViolation, entityID, domain.InvariantViolationPayload{
			EntityID:  entityID,
			Component: component,
			Detail:    detail,
		})
	}
}

// emit buffers an event until the end of the step. The world lock is held.
func (w *World) emit(t event.Type, entityID string, payload any) {
	w.pending = append(w.pending, event.New(t, entityID, w.now, payload))
}

func (w *World) publish(ctx context.Context, events []event.Event) {
	log := logger.FromContext(ctx)
	for _, evt := range events {
		if p, ok := evt.Payload.(domain.InvariantViolationPayload); ok {
			log.Error(LogMsgInvariantViolation, "entity_id", p.EntityID, "component", p.Component, "detail", p.Detail)
		}
		if err := w.bus.Publish(ctx, evt); err != nil {
			log.Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
		}
	}
}
