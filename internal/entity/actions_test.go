package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Holmiboii/ummorpg/internal/crafting"
	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/testing/fixture"
	"github.com/Holmiboii/ummorpg/internal/trade"
)

func TestNewPlayerDefaults(t *testing.T) {
	h := newHarness(t)
	p := h.player("p", 0, 0)

	assert.Equal(t, 1, p.Level())
	assert.Equal(t, 100, p.Hp)
	assert.Equal(t, 50, p.Mp)
	assert.Equal(t, int64(100), p.Gold())
	assert.Equal(t, fixture.InventorySize, p.Inventory().Len())
	assert.Equal(t, 2, p.Equipment().Len())
	assert.True(t, p.Skills[fixture.StrikeIndex].Learned)
	assert.True(t, p.Skills[fixture.MendIndex].Learned)
	assert.False(t, p.Skills[fixture.SlashIndex].Learned)
	assert.Equal(t, StateIdle, p.State)
}

func TestLearnAndUpgradeSkill(t *testing.T) {
	h := newHarness(t)
	p := h.player("p", 0, 0)

	assert.False(t, p.LearnSkill(fixture.StrikeIndex), "already learned")
	assert.False(t, p.LearnSkill(fixture.SlashIndex), "needs level 2")
	assert.False(t, p.UpgradeSkill(fixture.StrikeIndex), "next level needs level 2")
	assert.False(t, p.UpgradeSkill(fixture.SlashIndex), "not learned")

	p.Progress.Level = 2
	require.True(t, p.UpgradeSkill(fixture.StrikeIndex))
	assert.Equal(t, 2, p.Skills[fixture.StrikeIndex].Level)
	assert.Equal(t, int64(80), p.Gold())
	assert.False(t, p.UpgradeSkill(fixture.StrikeIndex), "at max level")

	p.SetGold(29)
	assert.False(t, p.LearnSkill(fixture.SlashIndex), "cannot pay")
	p.SetGold(30)
	require.True(t, p.LearnSkill(fixture.SlashIndex))
	assert.Equal(t, int64(0), p.Gold())

	p.Hp = 0
	assert.False(t, p.LearnSkill(fixture.EnduranceIndex), "dead")
}

func TestUsePotion(t *testing.T) {
	h := newHarness(t)
	p := h.player("p", 0, 0)
	p.Inventory().Restore([]domain.ItemSlot{domain.NewItemSlot(fixture.HealthPotion, 2), domain.NewItemSlot(fixture.Wood, 1)})
	p.Hp = 70

	require.True(t, p.UseItem(0, h.now))
	assert.Equal(t, 100, p.Hp, "capped at max")
	assert.Equal(t, domain.NewItemSlot(fixture.HealthPotion, 1), p.Inventory().Slots()[0])

	assert.False(t, p.UseItem(1, h.now), "materials are not usable")
	assert.False(t, p.UseItem(5, h.now), "empty slot")
}

func TestEquip(t *testing.T) {
	h := newHarness(t)
	p := h.player("p", 0, 0)
	p.Inventory().Restore([]domain.ItemSlot{
		domain.NewItemSlot(fixture.IronSword, 1),
		domain.NewItemSlot(fixture.LeatherCap, 1),
		domain.NewItemSlot(fixture.WoodenSword, 1),
	})

	assert.False(t, p.UseItem(0, h.now), "iron sword needs level 3")
	require.True(t, p.UseItem(1, h.now))
	assert.Equal(t, domain.NewItemSlot(fixture.LeatherCap, 1), p.Equipment().Slots()[1])
	assert.Equal(t, 110, p.Stats(h.now).HpMax)

	assert.False(t, p.SwapEquipment(2, 1, h.now), "sword does not fit the head slot")
	require.True(t, p.SwapEquipment(2, 0, h.now))
	assert.Equal(t, 14, p.Stats(h.now).Damage)

	p.Hp = 110
	require.True(t, p.SwapEquipment(1, 1, h.now), "unequip into the emptied slot")
	assert.Equal(t, 100, p.Hp, "hp clamps to the lowered maximum")
	assert.Equal(t, domain.NewItemSlot(fixture.LeatherCap, 1), p.Inventory().Slots()[1])
}

func TestInventoryRefusedWhileTrading(t *testing.T) {
	h := newHarness(t)
	a := h.player("a", 0, 0)
	b := h.player("b", 1, 0)
	a.Inventory().Restore([]domain.ItemSlot{domain.NewItemSlot(fixture.Wood, 4)})
	require.True(t, trade.Invite(a, b))
	require.True(t, trade.AcceptInvite(b, a))
	h.step(a, b)
	require.Equal(t, StateTrading, a.State)

	assert.False(t, a.SwapInventory(0, 1))
	assert.False(t, a.SplitInventory(0, 1))
	assert.False(t, a.MergeInventory(0, 1))
	assert.False(t, a.UseItem(0, h.now))
	assert.Equal(t, domain.NewItemSlot(fixture.Wood, 4), a.Inventory().Slots()[0])

	a.CancelAction()
	h.step(a)
	assert.True(t, a.SplitInventory(0, 1))
}

func TestCraft(t *testing.T) {
	h := newHarness(t)
	p := h.player("p", 0, 0)
	r := crafting.NewResolver(h.catalog, h.catalog.Player().CraftMaxIngredients)
	p.Inventory().Restore([]domain.ItemSlot{
		domain.NewItemSlot(fixture.Wood, 2),
		domain.NewItemSlot(fixture.Wood, 1),
		domain.NewItemSlot(fixture.IronOre, 1),
	})

	p.Navigate(Destination{Point: domain.Vec2{X: 5}})
	h.step(p)
	_, ok := p.Craft(r, []int{0, 1, 2})
	assert.False(t, ok, "crafting needs the entity idle")

	p.CancelAction()
	h.step(p)
	recipe, ok := p.Craft(r, []int{0, 1, 2})
	require.True(t, ok)
	assert.Equal(t, fixture.WoodenSword, recipe.Result)
	assert.Equal(t, 1, p.Inventory().Count(fixture.WoodenSword))
	assert.Equal(t, 1, p.Inventory().Count(fixture.Wood))
}

func TestNpcTrade(t *testing.T) {
	h := newHarness(t)
	p := h.player("p", 0, 0)
	m := h.merchant("m", 1, 0)
	reach := h.catalog.Player().InteractionRange
	p.Inventory().Restore([]domain.ItemSlot{domain.NewItemSlot(fixture.Wood, 5), domain.NewItemSlot(fixture.BoundRing, 1)})

	assert.False(t, p.BuyFromNpc(m, 0, 1, reach), "merchant not targeted")
	p.SetTarget("m")

	require.True(t, p.BuyFromNpc(m, 0, 2, reach))
	assert.Equal(t, int64(80), p.Gold())
	assert.Equal(t, 2, p.Inventory().Count(fixture.HealthPotion))

	p.SetGold(1000)
	assert.False(t, p.BuyFromNpc(m, 2, 9, reach), "nine swords need nine free slots")
	assert.Equal(t, int64(1000), p.Gold())
	assert.False(t, p.BuyFromNpc(m, 3, 1, reach), "no such sale item")
	assert.False(t, p.BuyFromNpc(m, 0, 0, reach))

	require.True(t, p.SellToNpc(m, 0, 3, reach))
	assert.Equal(t, int64(1003), p.Gold())
	assert.Equal(t, 2, p.Inventory().Count(fixture.Wood))
	assert.False(t, p.SellToNpc(m, 0, 3, reach), "only two left")
	assert.False(t, p.SellToNpc(m, 1, 1, reach), "not sellable")

	m.Position = domain.Vec2{X: 20}
	assert.False(t, p.SellToNpc(m, 0, 1, reach), "out of reach")
}

func TestNpcQuests(t *testing.T) {
	h := newHarness(t)
	p := h.player("p", 0, 0)
	m := h.merchant("m", 1, 0)
	reach := h.catalog.Player().InteractionRange
	p.SetTarget("m")

	assert.False(t, p.AcceptNpcQuest(m, 1, reach), "predecessor not completed")
	require.True(t, p.AcceptNpcQuest(m, 0, reach))
	assert.False(t, p.AcceptNpcQuest(m, 0, reach), "already held")

	_, ok := p.CompleteNpcQuest(m, 0, reach)
	assert.False(t, ok, "no kills yet")

	for range 3 {
		p.Quests.IncreaseKillCounter(fixture.MonsterWolf)
	}
	res, ok := p.CompleteNpcQuest(m, 0, reach)
	require.True(t, ok)
	assert.Equal(t, QuestResult{Quest: fixture.QuestWolfHunt, Gold: 50, Experience: 5, OldLevel: 1, NewLevel: 1}, res)
	assert.Equal(t, int64(150), p.Gold())
	assert.Equal(t, int64(5), p.Progress.Exp)
	assert.True(t, p.AcceptNpcQuest(m, 1, reach))
}

func TestRecoverSkipsDead(t *testing.T) {
	h := newHarness(t)
	p := h.player("p", 0, 0)
	p.Hp, p.Mp = 10, 10

	p.Recover(h.now)
	assert.Equal(t, 11, p.Hp)
	assert.Equal(t, 11, p.Mp)

	p.Hp = 0
	p.Recover(h.now)
	assert.Equal(t, 0, p.Hp)
}

func TestSurfaceDistance(t *testing.T) {
	h := newHarness(t)
	a := h.player("a", 0, 0)
	b := h.player("b", 3, 4)

	assert.InDelta(t, 4.0, SurfaceDistance(a, b), 1e-9)
	b.Position = domain.Vec2{X: 0.5}
	assert.Equal(t, 0.0, SurfaceDistance(a, b), "overlap floors at zero")
}

func TestRemaining(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 3*time.Second, Remaining(now.Add(3*time.Second), now))
	assert.Equal(t, time.Duration(0), Remaining(now.Add(-time.Second), now))
	assert.Equal(t, time.Duration(0), Remaining(time.Time{}, now))
}
