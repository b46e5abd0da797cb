package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Holmiboii/ummorpg/internal/domain"
)

var table = LevelTable{
	{HpMax: 100, MpMax: 50, Damage: 10, Defense: 2, Block: 0.1, Crit: 0.05, ExpMax: 10, HpRecovery: 1, MpRecovery: 2},
	{HpMax: 120, MpMax: 60, Damage: 12, Defense: 3, ExpMax: 15},
	{HpMax: 140, MpMax: 70, Damage: 14, Defense: 4, ExpMax: 20},
}

func TestBalanceExpReward(t *testing.T) {
	tests := []struct {
		victim, attacker int
		want             int64
	}{
		{victim: 20, attacker: 10, want: 200},
		{victim: 20, attacker: 20, want: 100},
		{victim: 20, attacker: 31, want: 0},
		{victim: 20, attacker: 30, want: 0},
		{victim: 40, attacker: 1, want: 200},
		{victim: 12, attacker: 10, want: 120},
		{victim: 7, attacker: 10, want: 70},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BalanceExpReward(100, tt.victim, tt.attacker), "victim %d attacker %d", tt.victim, tt.attacker)
	}
}

func TestSetExperience(t *testing.T) {
	t.Run("scenario from level 1 with 25 exp", func(t *testing.T) {
		p := Progress{Level: 1}
		gained := p.AddExperience(table, 25)
		assert.Equal(t, 2, gained)
		assert.Equal(t, Progress{Level: 3, Exp: 0}, p)
	})

	t.Run("sum of expMax for levels 1..k lands on k+1 with nothing left", func(t *testing.T) {
		var sum int64
		for k := 1; k < table.MaxLevel(); k++ {
			sum += table.Stats(k).ExpMax
			p := Progress{Level: 1}
			p.SetExperience(table, sum)
			assert.Equal(t, Progress{Level: k + 1, Exp: 0}, p, "k=%d", k)
		}
	})

	t.Run("clamps at max level", func(t *testing.T) {
		p := Progress{Level: 1}
		p.SetExperience(table, 10+15+20)
		assert.Equal(t, Progress{Level: 3, Exp: 20}, p)

		p = Progress{Level: 1}
		p.SetExperience(table, 1000)
		assert.Equal(t, Progress{Level: 3, Exp: 20}, p)
	})

	t.Run("remainder below next threshold", func(t *testing.T) {
		p := Progress{Level: 1, Exp: 4}
		assert.Equal(t, 1, p.AddExperience(table, 9))
		assert.Equal(t, Progress{Level: 2, Exp: 3}, p)
	})

	t.Run("lowering floors at zero and never delevels", func(t *testing.T) {
		p := Progress{Level: 2, Exp: 5}
		assert.Equal(t, 0, p.SetExperience(table, 2))
		assert.Equal(t, Progress{Level: 2, Exp: 2}, p)

		p.SetExperience(table, -30)
		assert.Equal(t, Progress{Level: 2, Exp: 0}, p)
	})

	t.Run("non-positive grant is a no-op", func(t *testing.T) {
		p := Progress{Level: 1, Exp: 3}
		assert.Equal(t, 0, p.AddExperience(table, 0))
		assert.Equal(t, Progress{Level: 1, Exp: 3}, p)
	})
}

func TestDeathPenalty(t *testing.T) {
	assert.Equal(t, int64(2), DeathPenalty(table, 2, 0.1))
	assert.Equal(t, int64(0), DeathPenalty(table, 1, 0))
}

func TestTables(t *testing.T) {
	assert.Equal(t, table[0], table.Stats(0))
	assert.Equal(t, table[2], table.Stats(99))

	stats := domain.LevelStats{HpMax: 40, ExpMax: 1}
	fixed := Fixed(stats, 4)
	assert.Equal(t, stats, fixed.Stats(1))
	assert.Equal(t, stats, fixed.Stats(4))
	assert.Equal(t, 4, fixed.MaxLevel())
}

func TestDerive(t *testing.T) {
	sword := domain.ItemTemplate{EquipDamageBonus: 4, EquipCritBonus: 0.02}
	helmet := domain.ItemTemplate{EquipHpBonus: 10, EquipDefenseBonus: 2}
	buff := domain.SkillLevel{BuffsHpMax: 30, BuffsDefense: 4, BuffsBlock: 0.05}

	got := Derive(table.Stats(1), domain.Attributes{Strength: 10, Intelligence: 5}, []domain.ItemTemplate{sword, helmet}, []domain.SkillLevel{buff})

	assert.Equal(t, 100+10+30+10, got.HpMax)
	assert.Equal(t, 50+3, got.MpMax)
	assert.Equal(t, 14, got.Damage)
	assert.Equal(t, 8, got.Defense)
	assert.InDelta(t, 0.15, got.Block, 1e-9)
	assert.InDelta(t, 0.07, got.Crit, 1e-9)
}

func TestRecovery(t *testing.T) {
	stats := domain.Stats{HpMax: 200, MpMax: 100}

	hp, mp := Recovery(table.Stats(1), stats, nil)
	assert.Equal(t, 1, hp)
	assert.Equal(t, 2, mp)

	hp, mp = Recovery(table.Stats(1), stats, []domain.SkillLevel{{BuffsHpPercentPerSecond: 0.05}, {BuffsMpPercentPerSecond: 0.1}})
	assert.Equal(t, 11, hp)
	assert.Equal(t, 12, mp)
}
