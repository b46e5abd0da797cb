package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/testing/fixture"
)

func TestSnapshotRoundTripRestoresRelativeTimers(t *testing.T) {
	h := newHarness(t)
	p := h.player("p", 3, 4)
	require.True(t, p.LearnSkill(fixture.EnduranceIndex))
	p.Skills[fixture.StrikeIndex].CooldownEnd = h.now.Add(2 * time.Second)
	p.Skills[fixture.EnduranceIndex].BuffTimeEnd = h.now.Add(5 * time.Second)
	p.Inventory().Restore([]domain.ItemSlot{domain.NewItemSlot(fixture.HealthPotion, 3), domain.NewItemSlot(fixture.WoodenSword, 1)})
	require.True(t, p.UseItem(1, h.now))
	require.True(t, p.Quests.Accept(fixture.QuestWolfHunt, 1))
	p.Quests.IncreaseKillCounter(fixture.MonsterWolf)
	p.Progress.Exp = 7
	p.Hp = 90

	snap := p.Snapshot(h.now)
	assert.Equal(t, 2.0, snap.Skills[fixture.StrikeIndex].CooldownRemaining)
	assert.Equal(t, 5.0, snap.Skills[fixture.EnduranceIndex].BuffTimeRemaining)
	assert.Equal(t, 0.0, snap.Skills[fixture.MendIndex].CooldownRemaining)

	later := h.now.Add(time.Hour)
	restored, dropped := FromSnapshot(snap, h.catalog, later)

	assert.Empty(t, dropped)
	assert.Equal(t, later.Add(2*time.Second), restored.Skills[fixture.StrikeIndex].CooldownEnd)
	assert.Equal(t, later.Add(5*time.Second), restored.Skills[fixture.EnduranceIndex].BuffTimeEnd)
	assert.True(t, restored.Skills[fixture.MendIndex].CooldownEnd.IsZero())
	assert.Equal(t, snap, restored.Snapshot(later))
	assert.Equal(t, StateIdle, restored.State)
}

func TestFromSnapshotRepairs(t *testing.T) {
	h := newHarness(t)
	snap := domain.CharacterSnapshot{
		ID:    "p",
		Name:  "p",
		Level: 1,
		Hp:    0,
		Inventory: []domain.ItemSlot{
			domain.NewItemSlot("dragon_egg", 1),
			domain.NewItemSlot(fixture.HealthPotion, 9),
		},
		Equipment: []domain.ItemSlot{domain.NewItemSlot(fixture.LeatherCap, 1), domain.EmptySlot()},
		Skills:    []domain.SkillRecord{{Name: "forgotten", Learned: true, Level: 1}},
		Quests:    []domain.Quest{{Name: fixture.QuestWolfHunt, Killed: 99}, {Name: "retired"}},
	}

	p, dropped := FromSnapshot(snap, h.catalog, h.now)

	assert.ElementsMatch(t, []domain.ItemSlot{
		domain.NewItemSlot("dragon_egg", 1),
		domain.NewItemSlot(fixture.HealthPotion, 4),
	}, dropped)
	slots := p.Inventory().Slots()
	assert.Equal(t, domain.NewItemSlot(fixture.LeatherCap, 1), slots[0], "unfit equipment moves to the inventory")
	assert.Equal(t, domain.NewItemSlot(fixture.HealthPotion, 5), slots[1])
	assert.Equal(t, []domain.ItemSlot{domain.EmptySlot(), domain.EmptySlot()}, p.Equipment().Slots())
	assert.Equal(t, []domain.Quest{{Name: fixture.QuestWolfHunt, Killed: 3}}, p.Quests.Quests())
	assert.True(t, p.Skills[fixture.StrikeIndex].Learned, "missing records keep catalog defaults")
	assert.Equal(t, StateDead, p.State, "saved dead stays dead")
}

func TestFromSnapshotClampsProgress(t *testing.T) {
	h := newHarness(t)
	snap := domain.CharacterSnapshot{ID: "p", Level: 9, Experience: 999, Hp: 5000, Mp: 5, Gold: -3}

	p, _ := FromSnapshot(snap, h.catalog, h.now)

	assert.Equal(t, 3, p.Level())
	assert.Equal(t, int64(20), p.Progress.Exp)
	assert.Equal(t, 140, p.Hp)
	assert.Equal(t, 5, p.Mp)
	assert.Equal(t, int64(0), p.Gold())
}
