// Package entity holds the simulated world entities and the state machine
// that advances them. During a step the Machine is the only caller of the
// mutating operations of the inventory, quest, progression and trade
// packages on behalf of an entity's own state.
package entity

import (
	"math"
	"time"

	"github.com/Holmiboii/ummorpg/internal/catalog"
	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/inventory"
	"github.com/Holmiboii/ummorpg/internal/progression"
	"github.com/Holmiboii/ummorpg/internal/quest"
	"github.com/Holmiboii/ummorpg/internal/trade"
)

// NoSkill marks an unset skill index.
const NoSkill = -1

// Destination is a navigation goal. The entity stops once it is within
// StoppingDistance of Point.
type Destination struct {
	Point            domain.Vec2
	StoppingDistance float64
}

// Latches are the pending commands of one entity. Repeated commands within
// a step overwrite each other; the state machine clears a latch when it
// consumes it.
type Latches struct {
	Navigate     *Destination
	Cancel       bool
	Respawn      bool
	PendingSkill int
}

// Movement is the active navigation of an entity.
type Movement struct {
	Active      bool
	Destination Destination
}

// Entity is a player, monster or NPC.
type Entity struct {
	ID         string
	Name       string
	Kind       domain.EntityKind
	Template   string
	Position   domain.Vec2
	Radius     float64
	Speed      float64
	Hp         int
	Mp         int
	Progress   progression.Progress
	Attributes domain.Attributes
	State      State
	TargetID   string
	Skills     []Skill
	Quests     *quest.Tracker
	Movement   Movement
	Latches    Latches

	// CurrentSkill is the skill being cast; NextSkill is queued behind it.
	CurrentSkill int
	NextSkill    int
	castTargetID string
	nextTargetID string
	targetQueued bool

	LastAttackerID string
	DiedAt         time.Time

	// Monster rewards and NPC services.
	RewardExperience int64
	RewardGold       int64
	CorpseDuration   time.Duration
	SaleItems        []string
	OfferedQuests    []string

	gold      int64
	inventory *inventory.Store
	equipment *inventory.Store
	offer     trade.Offer
	table     progression.Table
	catalog   *catalog.Catalog
}

func newEntity(id string, kind domain.EntityKind, c *catalog.Catalog, table progression.Table, inventorySize int, equipmentSlots []string) *Entity {
	p := c.Player()
	return &Entity{
		ID:           id,
		Kind:         kind,
		State:        StateIdle,
		Progress:     progression.Progress{Level: 1},
		Quests:       quest.NewTracker(c, p.QuestLimit),
		Latches:      Latches{PendingSkill: NoSkill},
		CurrentSkill: NoSkill,
		NextSkill:    NoSkill,
		inventory:    inventory.New(inventorySize, c),
		equipment:    inventory.NewEquipment(equipmentSlots, c),
		offer:        trade.NewOffer(p.TradeOfferSlots),
		table:        table,
		catalog:      c,
	}
}

// NewPlayer creates a level 1 character with full hp and mp, the starting
// gold and every default skill learned.
func NewPlayer(id, name string, c *catalog.Catalog) *Entity {
	p := c.Player()
	e := newEntity(id, domain.KindPlayer, c, progression.LevelTable(c.Levels()), p.InventorySize, p.EquipmentSlots)
	e.Name = name
	e.Position = p.StartPosition
	e.Radius = p.Radius
	e.Speed = p.Speed
	e.gold = p.StartGold
	for _, t := range c.Skills() {
		s := Skill{Name: t.Name}
		if t.LearnDefault {
			s.Learned = true
			s.Level = 1
		}
		e.Skills = append(e.Skills, s)
	}
	s := e.Stats(time.Time{})
	e.Hp, e.Mp = s.HpMax, s.MpMax
	return e
}

// NewMonster creates a monster at pos with full hp.
func NewMonster(id string, t domain.MonsterTemplate, pos domain.Vec2, c *catalog.Catalog) *Entity {
	e := newEntity(id, domain.KindMonster, c, progression.Fixed(t.Stats, t.Level), 0, nil)
	e.Name = t.Name
	e.Template = t.Name
	e.Position = pos
	e.Radius = t.Radius
	e.Speed = t.Speed
	e.Progress.Level = t.Level
	e.RewardExperience = t.RewardExperience
	e.RewardGold = t.RewardGold
	e.CorpseDuration = time.Duration(t.CorpseSeconds * float64(time.Second))
	e.Hp, e.Mp = t.Stats.HpMax, t.Stats.MpMax
	return e
}

// NewNpc creates a merchant or quest giver at pos.
func NewNpc(id string, t domain.NpcTemplate, pos domain.Vec2, c *catalog.Catalog) *Entity {
	e := newEntity(id, domain.KindNpc, c, progression.Fixed(domain.LevelStats{HpMax: 1}, 1), 0, nil)
	e.Name = t.Name
	e.Template = t.Name
	e.Position = pos
	e.Radius = t.Radius
	e.SaleItems = append([]string(nil), t.SaleItems...)
	e.OfferedQuests = append([]string(nil), t.Quests...)
	e.Hp = 1
	return e
}

// PartyID identifies the entity in trades.
func (e *Entity) PartyID() string { return e.ID }

// Inventory is the entity's item store.
func (e *Entity) Inventory() *inventory.Store { return e.inventory }

// Equipment is the entity's equipment store.
func (e *Entity) Equipment() *inventory.Store { return e.equipment }

// Gold is the current gold.
func (e *Entity) Gold() int64 { return e.gold }

// SetGold replaces the gold amount.
func (e *Entity) SetGold(gold int64) { e.gold = gold }

// Offer is the entity's side of a trade.
func (e *Entity) Offer() *trade.Offer { return &e.offer }

// Level is the current level.
func (e *Entity) Level() int { return e.Progress.Level }

// Alive reports whether hp is above zero.
func (e *Entity) Alive() bool { return e.Hp > 0 }

// IsPlayer reports whether the entity is a player character.
func (e *Entity) IsPlayer() bool { return e.Kind == domain.KindPlayer }

// BaseStats are the level stats before attributes, equipment and buffs.
func (e *Entity) BaseStats() domain.LevelStats {
	return e.table.Stats(e.Progress.Level)
}

// Stats derives the effective stats at now.
func (e *Entity) Stats(now time.Time) domain.Stats {
	return progression.Derive(e.BaseStats(), e.Attributes, e.equippedTemplates(), e.activeBuffs(now))
}

func (e *Entity) equippedTemplates() []domain.ItemTemplate {
	var out []domain.ItemTemplate
	for i := 0; i < e.equipment.Len(); i++ {
		if t, ok := e.equipment.Template(i); ok {
			out = append(out, t)
		}
	}
	return out
}

func (e *Entity) activeBuffs(now time.Time) []domain.SkillLevel {
	var out []domain.SkillLevel
	for i, s := range e.Skills {
		if s.BuffActive(now) {
			out = append(out, e.skillTemplate(i).Level(s.Level))
		}
	}
	return out
}

// GainExperience adds experience and returns the levels before and after.
func (e *Entity) GainExperience(amount int64) (oldLevel, newLevel int) {
	oldLevel = e.Progress.Level
	e.Progress.AddExperience(e.table, amount)
	return oldLevel, e.Progress.Level
}

// Recover applies one recovery tick and clamps hp and mp to their maxima.
// Dead entities do not recover.
func (e *Entity) Recover(now time.Time) {
	if !e.Alive() {
		return
	}
	stats := e.Stats(now)
	hp, mp := progression.Recovery(e.BaseStats(), stats, e.activeBuffs(now))
	e.Hp = min(e.Hp+hp, stats.HpMax)
	e.Mp = min(e.Mp+mp, stats.MpMax)
}

// ClampVitals caps hp and mp at their current maxima.
func (e *Entity) ClampVitals(now time.Time) {
	stats := e.Stats(now)
	e.Hp = min(e.Hp, stats.HpMax)
	e.Mp = min(e.Mp, stats.MpMax)
}

// SurfaceDistance is the closest distance between the two entities' bounds.
func SurfaceDistance(a, b *Entity) float64 {
	return math.Max(0, a.Position.Distance(b.Position)-a.Radius-b.Radius)
}
