// Package progression computes experience, levels and derived stats.
package progression

import (
	"math"

	"github.com/Holmiboii/ummorpg/internal/domain"
)

// Table provides the base stats of each level.
type Table interface {
	Stats(level int) domain.LevelStats
	MaxLevel() int
}

// LevelTable is a player level table; index 0 holds level 1.
type LevelTable []domain.LevelStats

// Stats returns the base stats of a 1-based level, clamped to the table.
func (t LevelTable) Stats(level int) domain.LevelStats {
	if len(t) == 0 {
		return domain.LevelStats{}
	}
	return t[min(max(level, 1), len(t))-1]
}

// MaxLevel is the level cap.
func (t LevelTable) MaxLevel() int {
	return len(t)
}

// fixedTable serves one set of stats at its single level, as monsters use.
type fixedTable struct {
	stats domain.LevelStats
	level int
}

// Fixed returns a table that reports the same stats for every level and caps
// progression at level.
func Fixed(stats domain.LevelStats, level int) Table {
	return fixedTable{stats: stats, level: level}
}

func (f fixedTable) Stats(int) domain.LevelStats { return f.stats }
func (f fixedTable) MaxLevel() int              { return f.level }

// Progress is a level plus the experience gathered inside it.
type Progress struct {
	Level int
	Exp   int64
}

// SetExperience moves experience to value. Lowering floors at zero. Raising
// levels up while the current level's expMax is reached and the cap is not;
// at the cap, experience clamps to expMax. It returns the levels gained.
func (p *Progress) SetExperience(t Table, value int64) int {
	if value <= p.Exp {
		p.Exp = max(value, 0)
		return 0
	}

	p.Exp = value
	gained := 0
	for p.Level < t.MaxLevel() {
		need := t.Stats(p.Level).ExpMax
		if need <= 0 || p.Exp < need {
			break
		}
		p.Exp -= need
		p.Level++
		gained++
	}
	if need := t.Stats(p.Level).ExpMax; p.Exp > need {
		p.Exp = need
	}
	return gained
}

// AddExperience grants amount experience and returns the levels gained.
func (p *Progress) AddExperience(t Table, amount int64) int {
	if amount <= 0 {
		return 0
	}
	return p.SetExperience(t, p.Exp+amount)
}

// DeathPenalty is the experience lost on death: a fraction of the current
// level's expMax.
func DeathPenalty(t Table, level int, fraction float64) int64 {
	return int64(math.Round(float64(t.Stats(level).ExpMax) * fraction))
}

// BalanceExpReward scales a kill reward by the level difference between the
// victim and the attacker, clamped to ±MaxLevelDifference. A victim ten or
// more levels above doubles the reward; ten or more below yields nothing.
func BalanceExpReward(reward int64, victimLevel, attackerLevel int) int64 {
	diff := min(max(victimLevel-attackerLevel, -MaxLevelDifference), MaxLevelDifference)
	multiplier := 1 + float64(diff)*RewardStepPerLevel
	return int64(math.Round(float64(reward) * multiplier))
}
