package entity

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/Holmiboii/ummorpg/internal/catalog"
	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/testing/fixture"
)

type population map[string]*Entity

func (p population) Lookup(id string) (*Entity, bool) {
	e, ok := p[id]
	return e, ok
}

type recorder struct {
	transitions []string
	deaths      []string
	expLost     []int64
	respawns    []string
	levelUps    [][2]int
}

func (r *recorder) Transition(e *Entity, from, to State) {
	r.transitions = append(r.transitions, fmt.Sprintf("%s:%s->%s", e.ID, from, to))
}

func (r *recorder) Died(e *Entity, killerID string, expLost int64) {
	r.deaths = append(r.deaths, e.ID+"<-"+killerID)
	r.expLost = append(r.expLost, expLost)
}

func (r *recorder) Respawned(e *Entity) {
	r.respawns = append(r.respawns, e.ID)
}

func (r *recorder) LevelUp(_ *Entity, oldLevel, newLevel int) {
	r.levelUps = append(r.levelUps, [2]int{oldLevel, newLevel})
}

type harness struct {
	t       *testing.T
	catalog *catalog.Catalog
	world   population
	rec     *recorder
	nav     StraightLine
	machine *Machine
	now     time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:       t,
		catalog: fixture.Catalog(t),
		world:   population{},
		rec:     &recorder{},
		now:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	h.machine = NewMachine(h.world, h.nav, h.rec, rand.New(rand.NewSource(1)))
	return h
}

func (h *harness) player(id string, x, y float64) *Entity {
	e := NewPlayer(id, id, h.catalog)
	e.Position = domain.Vec2{X: x, Y: y}
	h.world[id] = e
	return e
}

func (h *harness) wolf(id string, x, y float64) *Entity {
	t, ok := h.catalog.Monster(fixture.MonsterWolf)
	if !ok {
		h.t.Fatal("fixture wolf missing")
	}
	e := NewMonster(id, t, domain.Vec2{X: x, Y: y}, h.catalog)
	h.world[id] = e
	return e
}

func (h *harness) merchant(id string, x, y float64) *Entity {
	t, ok := h.catalog.Npc(fixture.NpcMerchant)
	if !ok {
		h.t.Fatal("fixture merchant missing")
	}
	e := NewNpc(id, t, domain.Vec2{X: x, Y: y}, h.catalog)
	h.world[id] = e
	return e
}

func (h *harness) step(es ...*Entity) {
	for _, e := range es {
		h.machine.Step(e, h.now)
	}
}

func (h *harness) advance(d time.Duration) {
	h.now = h.now.Add(d)
}
