package world

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Holmiboii/ummorpg/internal/catalog"
	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/entity"
	"github.com/Holmiboii/ummorpg/internal/event"
	"github.com/Holmiboii/ummorpg/internal/testing/fixture"
)

type testWorld struct {
	t      *testing.T
	w      *World
	clock  *clockwork.FakeClock
	events []event.Event
}

func newTestWorld(t *testing.T, spawns ...domain.Spawn) *testWorld {
	t.Helper()
	f := fixture.File()
	f.Spawns = spawns
	c, err := catalog.New(f)
	require.NoError(t, err)

	tw := &testWorld{t: t, clock: clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))}
	bus := event.NewMemoryBus()
	for _, typ := range event.AllTypes {
		bus.Subscribe(typ, func(_ context.Context, evt event.Event) error {
			tw.events = append(tw.events, evt)
			return nil
		})
	}
	tw.w = New(Config{RecoveryInterval: time.Second}, c, tw.clock, bus, rand.New(rand.NewSource(1)))
	return tw
}

func (tw *testWorld) player(id string, x, y float64) *entity.Entity {
	tw.t.Helper()
	e := entity.NewPlayer(id, id, tw.w.Catalog())
	e.Position = domain.Vec2{X: x, Y: y}
	require.NoError(tw.t, tw.w.AddPlayer(e))
	return e
}

func (tw *testWorld) submit(id string, cmds ...Command) {
	tw.t.Helper()
	for _, c := range cmds {
		require.NoError(tw.t, tw.w.Submit(id, c))
	}
}

func (tw *testWorld) step(d time.Duration) {
	tw.clock.Advance(d)
	tw.w.Step(context.Background())
}

func (tw *testWorld) ofType(typ event.Type) []event.Event {
	var out []event.Event
	for _, evt := range tw.events {
		if evt.Type == typ {
			out = append(out, evt)
		}
	}
	return out
}

func (tw *testWorld) first(kind domain.EntityKind) *entity.Entity {
	tw.t.Helper()
	for _, id := range tw.w.sortedIDs() {
		if e := tw.w.entities[id]; e.Kind == kind {
			return e
		}
	}
	tw.t.Fatalf("no %s in world", kind)
	return nil
}

func TestSubmit(t *testing.T) {
	tw := newTestWorld(t)

	err := tw.w.Submit("ghost", CancelAction{})
	assert.True(t, errors.Is(err, domain.ErrNotOnline))

	tw.player("p", 0, 0)
	tw.w.cfg.MaxInbox = 2
	require.NoError(t, tw.w.Submit("p", CancelAction{}))
	require.NoError(t, tw.w.Submit("p", CancelAction{}))
	assert.ErrorIs(t, tw.w.Submit("p", CancelAction{}), ErrInboxFull)

	tw.step(0)
	assert.NoError(t, tw.w.Submit("p", CancelAction{}), "step drains the inbox")
}

func TestAddRemovePlayer(t *testing.T) {
	tw := newTestWorld(t)
	p := tw.player("p", 0, 0)
	assert.ErrorIs(t, tw.w.AddPlayer(p), domain.ErrAlreadyOnline)
	assert.True(t, tw.w.Online("p"))

	tw.submit("p", Navigate{X: 10})
	snap, err := tw.w.RemovePlayer("p")
	require.NoError(t, err)
	assert.Equal(t, "p", snap.ID)
	assert.False(t, tw.w.Online("p"))
	assert.Empty(t, tw.w.inbox, "queued commands are dropped")

	_, err = tw.w.RemovePlayer("p")
	assert.ErrorIs(t, err, domain.ErrNotOnline)
	_, err = tw.w.View("p")
	assert.ErrorIs(t, err, domain.ErrNotOnline)
}

func TestSpawnAllAndSnapshots(t *testing.T) {
	tw := newTestWorld(t,
		domain.Spawn{Kind: domain.KindMonster, Template: fixture.MonsterWolf, Position: domain.Vec2{X: 5}},
		domain.Spawn{Kind: domain.KindNpc, Template: fixture.NpcMerchant},
		domain.Spawn{Kind: domain.KindMonster, Template: "dragon"},
	)
	assert.Equal(t, 2, tw.w.SpawnAll(context.Background()))

	tw.player("b", 0, 0)
	tw.player("a", 0, 0)
	snaps := tw.w.Snapshots()
	require.Len(t, snaps, 2, "only players are snapshotted")
	assert.Equal(t, "a", snaps[0].ID)
	assert.Equal(t, "b", snaps[1].ID)
}

func TestNavigateArrives(t *testing.T) {
	tw := newTestWorld(t)
	p := tw.player("p", 0, 0)

	tw.submit("p", Navigate{X: 10, StoppingDistance: 0})
	tw.step(0)
	assert.Equal(t, entity.StateMoving, p.State)

	tw.step(time.Second)
	assert.InDelta(t, 5.0, p.Position.X, 1e-9)
	assert.Equal(t, entity.StateMoving, p.State)

	tw.step(time.Second)
	assert.InDelta(t, 10.0, p.Position.X, 1e-9)
	assert.Equal(t, entity.StateIdle, p.State)

	v, err := tw.w.View("p")
	require.NoError(t, err)
	assert.Equal(t, "IDLE", v.State)
}

func TestRecoveryTick(t *testing.T) {
	tw := newTestWorld(t)
	p := tw.player("p", 0, 0)
	p.Hp = 50

	tw.step(0)
	tw.step(500 * time.Millisecond)
	assert.Equal(t, 50, p.Hp, "interval not elapsed")

	tw.step(500 * time.Millisecond)
	assert.Equal(t, 51, p.Hp)
}

func TestTradeThroughCommands(t *testing.T) {
	tw := newTestWorld(t)
	a := tw.player("a", 0, 0)
	b := tw.player("b", 1, 0)
	a.Inventory().Restore([]domain.ItemSlot{domain.NewItemSlot(fixture.Wood, 4)})

	tw.submit("a", SetTarget{TargetID: "b"}, TradeRequest{})
	tw.submit("b", TradeAcceptInvite{})
	tw.step(0)
	require.Equal(t, entity.StateTrading, a.State)
	require.Equal(t, entity.StateTrading, b.State)

	tw.submit("a", TradeOfferItem{InventoryIndex: 0, OfferIndex: 0}, TradeOfferGold{Amount: 10}, TradeLock{})
	tw.submit("b", TradeLock{})
	tw.submit("a", TradeAccept{})
	tw.submit("b", TradeAccept{})
	tw.step(0)

	assert.Equal(t, entity.StateIdle, a.State)
	assert.Equal(t, entity.StateIdle, b.State)
	assert.Equal(t, 0, a.Inventory().Count(fixture.Wood))
	assert.Equal(t, 4, b.Inventory().Count(fixture.Wood))
	assert.Equal(t, int64(90), a.Gold())
	assert.Equal(t, int64(110), b.Gold())
	assert.Len(t, tw.ofType(event.TradeCompleted), 2)
	assert.Empty(t, tw.ofType(event.InvariantViolation))
}

func TestTradeCancel(t *testing.T) {
	tw := newTestWorld(t)
	a := tw.player("a", 0, 0)
	b := tw.player("b", 1, 0)

	tw.submit("a", TradeCancel{}, SetTarget{TargetID: "b"}, TradeRequest{})
	tw.submit("b", TradeAcceptInvite{})
	tw.step(0)
	require.Equal(t, entity.StateTrading, a.State)

	tw.submit("b", TradeCancel{})
	tw.step(0)
	assert.Equal(t, entity.StateIdle, b.State)
	tw.step(0)
	assert.Equal(t, entity.StateIdle, a.State, "partner observes the cleared invitation")
	assert.Empty(t, tw.ofType(event.TradeCompleted))
}

func TestKillDespawnAndRespawnMonster(t *testing.T) {
	tw := newTestWorld(t, domain.Spawn{Kind: domain.KindMonster, Template: fixture.MonsterWolf, Position: domain.Vec2{X: 1}})
	tw.w.SpawnAll(context.Background())
	wolf := tw.first(domain.KindMonster)
	wolf.Hp = 10
	p := tw.player("p", 0, 0)

	tw.submit("p", SetTarget{TargetID: wolf.ID}, UseSkill{Index: fixture.StrikeIndex})
	tw.step(0)
	require.Equal(t, entity.StateCasting, p.State)

	tw.step(time.Second)
	tw.step(0)
	assert.Equal(t, entity.StateDead, wolf.State)
	assert.Equal(t, int64(103), p.Gold())
	died := tw.ofType(event.EntityDied)
	require.Len(t, died, 1)
	assert.Equal(t, domain.EntityDiedPayload{EntityID: wolf.ID, KillerID: "p"}, died[0].Payload)

	tw.step(9 * time.Second)
	_, ok := tw.w.entities.Lookup(wolf.ID)
	assert.True(t, ok, "corpse stays until its duration elapses")

	tw.step(time.Second)
	_, ok = tw.w.entities.Lookup(wolf.ID)
	assert.False(t, ok)
	fresh := tw.first(domain.KindMonster)
	assert.NotEqual(t, wolf.ID, fresh.ID)
	assert.Equal(t, domain.Vec2{X: 1}, fresh.Position)
	assert.True(t, fresh.Alive())
}

func TestEquipPublishesEquipmentChanged(t *testing.T) {
	tw := newTestWorld(t)
	p := tw.player("p", 0, 0)
	p.Inventory().Restore([]domain.ItemSlot{domain.NewItemSlot(fixture.WoodenSword, 1)})

	tw.submit("p", InventoryUse{Index: 0})
	tw.step(0)

	changed := tw.ofType(event.EquipmentChanged)
	require.Len(t, changed, 1)
	assert.Equal(t, domain.EquipmentChangedPayload{
		EntityID: "p",
		Index:    0,
		Old:      domain.EmptySlot(),
		New:      domain.NewItemSlot(fixture.WoodenSword, 1),
	}, changed[0].Payload)
}

func TestCraftAndQuestEvents(t *testing.T) {
	tw := newTestWorld(t, domain.Spawn{Kind: domain.KindNpc, Template: fixture.NpcMerchant, Position: domain.Vec2{X: 1}})
	tw.w.SpawnAll(context.Background())
	npc := tw.first(domain.KindNpc)
	p := tw.player("p", 0, 0)
	p.Inventory().Restore([]domain.ItemSlot{
		domain.NewItemSlot(fixture.Wood, 1),
		domain.NewItemSlot(fixture.Wood, 1),
		domain.NewItemSlot(fixture.IronOre, 1),
	})

	tw.submit("p", Craft{Indices: []int{0, 1, 2}})
	tw.step(0)
	crafted := tw.ofType(event.ItemCrafted)
	require.Len(t, crafted, 1)
	assert.Equal(t, fixture.WoodenSword, crafted[0].Payload.(domain.ItemCraftedPayload).Result)

	tw.submit("p", SetTarget{TargetID: npc.ID}, QuestAccept{Index: 0})
	tw.step(0)
	for range 3 {
		p.Quests.IncreaseKillCounter(fixture.MonsterWolf)
	}
	p.Progress.Exp = 8
	tw.submit("p", QuestComplete{Index: 0}, NpcBuy{Index: 0, Amount: 1})
	tw.step(0)

	require.Len(t, tw.ofType(event.QuestCompleted), 1)
	levelUps := tw.ofType(event.LevelUp)
	require.Len(t, levelUps, 1)
	assert.Equal(t, domain.LevelUpPayload{EntityID: "p", OldLevel: 1, NewLevel: 2}, levelUps[0].Payload)
	assert.Equal(t, 1, p.Inventory().Count(fixture.HealthPotion))
	assert.Equal(t, int64(140), p.Gold())
}

func TestRejectedCommandsHaveNoEffect(t *testing.T) {
	tw := newTestWorld(t)
	p := tw.player("p", 0, 0)
	before := p.Snapshot(tw.clock.Now())

	tw.submit("p",
		Respawn{},
		TradeOfferGold{Amount: 5},
		TradeAccept{},
		TradeAcceptInvite{},
		QuestAccept{Index: 0},
		NpcSell{Index: 0, Amount: 1},
		InventorySplit{From: 0, To: 1},
		LearnSkill{Index: 99},
	)
	tw.step(0)

	assert.Equal(t, before, p.Snapshot(tw.clock.Now()))
	assert.Equal(t, entity.StateIdle, p.State)
	assert.Empty(t, tw.events)
}

func TestNewCommand(t *testing.T) {
	kinds := Kinds()
	assert.Len(t, kinds, 26)
	for _, kind := range kinds {
		cmd, ok := NewCommand(kind)
		require.True(t, ok, kind)
		assert.Equal(t, kind, cmd.Kind())
	}
	_, ok := NewCommand("teleport")
	assert.False(t, ok)
}
