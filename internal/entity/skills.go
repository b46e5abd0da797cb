package entity

import (
	"time"

	"github.com/Holmiboii/ummorpg/internal/domain"
)

// Skill is an entity's instance of a skill template, with absolute timers.
type Skill struct {
	Name        string
	Learned     bool
	Level       int
	CastTimeEnd time.Time
	CooldownEnd time.Time
	BuffTimeEnd time.Time
}

// Ready reports whether the cooldown is over.
func (s Skill) Ready(now time.Time) bool {
	return !now.Before(s.CooldownEnd)
}

// BuffActive reports whether the skill's buff is running.
func (s Skill) BuffActive(now time.Time) bool {
	return now.Before(s.BuffTimeEnd)
}

// Remaining returns max(0, end-now).
func Remaining(end, now time.Time) time.Duration {
	return max(end.Sub(now), 0)
}

func (e *Entity) validSkill(i int) bool {
	return i >= 0 && i < len(e.Skills) && i < len(e.catalog.Skills())
}

func (e *Entity) skillTemplate(i int) domain.SkillTemplate {
	return e.catalog.Skills()[i]
}

// skillLevel returns the values of the skill's current level.
func (e *Entity) skillLevel(i int) domain.SkillLevel {
	return e.skillTemplate(i).Level(e.Skills[i].Level)
}

// LearnSkill learns skill i at level 1 when the entity meets its level-1
// requirement and pays its cost.
func (e *Entity) LearnSkill(i int) bool {
	if !e.Alive() || !e.validSkill(i) || e.Skills[i].Learned {
		return false
	}
	lvl := e.skillTemplate(i).Level(1)
	if e.Level() < lvl.RequiredLevel || e.gold < lvl.Cost {
		return false
	}
	e.gold -= lvl.Cost
	e.Skills[i].Learned = true
	e.Skills[i].Level = 1
	return true
}

// UpgradeSkill raises a learned skill one level when the next level's
// requirement and cost are met.
func (e *Entity) UpgradeSkill(i int) bool {
	if !e.Alive() || !e.validSkill(i) || !e.Skills[i].Learned {
		return false
	}
	tmpl := e.skillTemplate(i)
	if e.Skills[i].Level >= tmpl.MaxLevel() {
		return false
	}
	next := tmpl.Level(e.Skills[i].Level + 1)
	if e.Level() < next.RequiredLevel || e.gold < next.Cost {
		return false
	}
	e.gold -= next.Cost
	e.Skills[i].Level++
	return true
}

// weaponEquipped reports whether any equipped item's category starts with
// category. An empty category needs no weapon.
func (e *Entity) weaponEquipped(category string) bool {
	if category == "" {
		return true
	}
	for _, t := range e.equippedTemplates() {
		if t.FitsEquipmentSlot(category) {
			return true
		}
	}
	return false
}

// castCheckSelf: alive, learned, enough mana, weapon equipped, off cooldown.
func (e *Entity) castCheckSelf(i int, now time.Time) bool {
	if !e.Alive() || !e.validSkill(i) || !e.Skills[i].Learned {
		return false
	}
	tmpl := e.skillTemplate(i)
	return e.Mp >= e.skillLevel(i).Mana &&
		e.weaponEquipped(tmpl.RequiredWeaponCategory) &&
		e.Skills[i].Ready(now)
}

// castCheckTarget resolves the target the skill acts on. Attacks need a live
// player or monster other than the caster. Heals fall back to the caster
// unless the target is a live player. Buffs always act on the caster.
func (e *Entity) castCheckTarget(i int, lookup Lookup) (*Entity, bool) {
	target, found := lookup.Lookup(e.TargetID)
	switch e.skillTemplate(i).Category {
	case domain.SkillCategoryAttack:
		if !found || target == e || !target.Alive() || target.Kind == domain.KindNpc {
			return nil, false
		}
		return target, true
	case domain.SkillCategoryHeal:
		if found && target.Alive() && target.IsPlayer() {
			return target, true
		}
		return e, true
	case domain.SkillCategoryBuff:
		return e, true
	}
	return nil, false
}

// castCheckDistance compares the closest surface distance with the cast range.
func (e *Entity) castCheckDistance(i int, target *Entity) bool {
	return target == e || SurfaceDistance(e, target) <= e.skillLevel(i).CastRange
}

// approachDestination is a point close enough to target to cast skill i.
func (e *Entity) approachDestination(i int, target *Entity) Destination {
	return Destination{
		Point:            target.Position,
		StoppingDistance: e.skillLevel(i).CastRange*ApproachFactor + e.Radius + target.Radius,
	}
}

func (e *Entity) startCast(i int, target *Entity, now time.Time) {
	e.CurrentSkill = i
	e.castTargetID = target.ID
	e.Skills[i].CastTimeEnd = now.Add(e.skillLevel(i).CastDuration())
}

func (e *Entity) clearCast() {
	if e.CurrentSkill != NoSkill && e.validSkill(e.CurrentSkill) {
		e.Skills[e.CurrentSkill].CastTimeEnd = time.Time{}
	}
	e.CurrentSkill = NoSkill
	e.NextSkill = NoSkill
	e.castTargetID = ""
}

func (e *Entity) castFinished(now time.Time) bool {
	return e.CurrentSkill != NoSkill && !now.Before(e.Skills[e.CurrentSkill].CastTimeEnd)
}

func (e *Entity) castingAttack() bool {
	return e.CurrentSkill != NoSkill && e.skillTemplate(e.CurrentSkill).Category == domain.SkillCategoryAttack
}

func (e *Entity) stopBuffs() {
	for i := range e.Skills {
		e.Skills[i].BuffTimeEnd = time.Time{}
	}
}

// SetTarget targets id. While casting the switch is deferred to the end of
// the cast.
func (e *Entity) SetTarget(id string) bool {
	if e.State == StateDead || e.State == StateTrading {
		return false
	}
	if e.State == StateCasting {
		e.nextTargetID = id
		e.targetQueued = true
		return true
	}
	e.TargetID = id
	return true
}

// RequestSkill latches skill i. While casting the request queues as the next
// skill when the state machine consumes it.
func (e *Entity) RequestSkill(i int) bool {
	if !e.validSkill(i) || !e.Skills[i].Learned {
		return false
	}
	e.Latches.PendingSkill = i
	return true
}

// applyQueuedTarget performs a target switch deferred during a cast.
func (e *Entity) applyQueuedTarget() {
	if !e.targetQueued {
		return
	}
	e.TargetID = e.nextTargetID
	e.nextTargetID = ""
	e.targetQueued = false
}

// Navigate latches a navigation request.
func (e *Entity) Navigate(d Destination) {
	e.Latches.Navigate = &d
}

// CancelAction latches a cancel request.
func (e *Entity) CancelAction() {
	e.Latches.Cancel = true
}

// RequestRespawn latches a respawn request.
func (e *Entity) RequestRespawn() {
	e.Latches.Respawn = true
}
