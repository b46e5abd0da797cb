package progression

import (
	"math"

	"github.com/Holmiboii/ummorpg/internal/domain"
)

// Derive computes the effective stats. Only hpMax and mpMax scale with
// attributes; the rest are base plus equipment plus active buffs.
func Derive(base domain.LevelStats, attrs domain.Attributes, equipment []domain.ItemTemplate, buffs []domain.SkillLevel) domain.Stats {
	s := domain.Stats{
		HpMax:   base.HpMax + int(math.Round(float64(base.HpMax)*float64(attrs.Strength)*AttributeBonusPerPoint)),
		MpMax:   base.MpMax + int(math.Round(float64(base.MpMax)*float64(attrs.Intelligence)*AttributeBonusPerPoint)),
		Damage:  base.Damage,
		Defense: base.Defense,
		Block:   base.Block,
		Crit:    base.Crit,
	}
	for _, e := range equipment {
		s.HpMax += e.EquipHpBonus
		s.MpMax += e.EquipMpBonus
		s.Damage += e.EquipDamageBonus
		s.Defense += e.EquipDefenseBonus
		s.Block += e.EquipBlockBonus
		s.Crit += e.EquipCritBonus
	}
	for _, b := range buffs {
		s.HpMax += b.BuffsHpMax
		s.MpMax += b.BuffsMpMax
		s.Damage += b.BuffsDamage
		s.Defense += b.BuffsDefense
		s.Block += b.BuffsBlock
		s.Crit += b.BuffsCrit
	}
	return s
}

// Recovery returns the hp and mp restored by one recovery tick.
func Recovery(base domain.LevelStats, stats domain.Stats, buffs []domain.SkillLevel) (hp, mp int) {
	var hpPercent, mpPercent float64
	for _, b := range buffs {
		hpPercent += b.BuffsHpPercentPerSecond
		mpPercent += b.BuffsMpPercentPerSecond
	}
	hp = base.HpRecovery + int(math.Round(hpPercent*float64(stats.HpMax)))
	mp = base.MpRecovery + int(math.Round(mpPercent*float64(stats.MpMax)))
	return hp, mp
}
