package domain

import "time"

// SkillCategory decides how a skill picks its target and what it does on
// cast finish.
type SkillCategory string

const (
	SkillCategoryAttack SkillCategory = "attack"
	SkillCategoryHeal   SkillCategory = "heal"
	SkillCategoryBuff   SkillCategory = "buff"
)

// SkillLevel holds the values of one skill level.
type SkillLevel struct {
	RequiredLevel int     `json:"required_level"`
	Cost          int64   `json:"cost"`
	Mana          int     `json:"mana"`
	CastTime      float64 `json:"cast_time"`
	Cooldown      float64 `json:"cooldown"`
	CastRange     float64 `json:"cast_range"`
	Damage        int     `json:"damage"`
	Heal          int     `json:"heal"`
	BuffTime      float64 `json:"buff_time"`

	BuffsHpMax              int     `json:"buffs_hp_max"`
	BuffsMpMax              int     `json:"buffs_mp_max"`
	BuffsDamage             int     `json:"buffs_damage"`
	BuffsDefense            int     `json:"buffs_defense"`
	BuffsBlock              float64 `json:"buffs_block"`
	BuffsCrit               float64 `json:"buffs_crit"`
	BuffsHpPercentPerSecond float64 `json:"buffs_hp_percent_per_second"`
	BuffsMpPercentPerSecond float64 `json:"buffs_mp_percent_per_second"`
}

// CastDuration converts the configured cast time in seconds.
func (l SkillLevel) CastDuration() time.Duration {
	return seconds(l.CastTime)
}

// CooldownDuration converts the configured cooldown in seconds.
func (l SkillLevel) CooldownDuration() time.Duration {
	return seconds(l.Cooldown)
}

// BuffDuration converts the configured buff time in seconds.
func (l SkillLevel) BuffDuration() time.Duration {
	return seconds(l.BuffTime)
}

// SkillTemplate is the static definition of a skill. Levels[0] is level 1.
type SkillTemplate struct {
	Name                   string        `json:"name"`
	Category               SkillCategory `json:"category"`
	RequiredWeaponCategory string        `json:"required_weapon_category,omitempty"`
	LearnDefault           bool          `json:"learn_default"`
	Levels                 []SkillLevel  `json:"levels"`
}

// MaxLevel is the highest level the skill can be upgraded to.
func (t SkillTemplate) MaxLevel() int {
	return len(t.Levels)
}

// Level returns the values for a 1-based skill level, clamped to the table.
func (t SkillTemplate) Level(level int) SkillLevel {
	if len(t.Levels) == 0 {
		return SkillLevel{}
	}
	if level < 1 {
		level = 1
	}
	if level > len(t.Levels) {
		level = len(t.Levels)
	}
	return t.Levels[level-1]
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
