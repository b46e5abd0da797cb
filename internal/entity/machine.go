package entity

import (
	"math"
	"math/rand"
	"time"

	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/progression"
	"github.com/Holmiboii/ummorpg/internal/trade"
)

// Lookup resolves entity ids. Targets are weak references, so a missing id
// is an ordinary outcome.
type Lookup interface {
	Lookup(id string) (*Entity, bool)
}

// Notifier receives the outcomes of state machine steps.
type Notifier interface {
	Transition(e *Entity, from, to State)
	Died(e *Entity, killerID string, expLost int64)
	Respawned(e *Entity)
	LevelUp(e *Entity, oldLevel, newLevel int)
}

type handler func(m *Machine, e *Entity, now time.Time) (State, bool)

// transitions maps each state to the events it handles. Events missing from
// a state's row are no-ops there; latched ones are discarded.
var transitions = map[State]map[Event]handler{
	StateIdle: {
		EventDied:         (*Machine).died,
		EventCancelAction: (*Machine).clearTarget,
		EventTradeStarted: (*Machine).startTrade,
		EventNavigate:     (*Machine).navigate,
		EventSkillRequest: (*Machine).requestSkill,
	},
	StateMoving: {
		EventDied:         (*Machine).died,
		EventCancelAction: (*Machine).cancelAction,
		EventTradeStarted: (*Machine).startTrade,
		EventNavigate:     (*Machine).navigate,
		EventSkillRequest: (*Machine).requestSkill,
		EventMoveEnd:      (*Machine).moveEnd,
	},
	StateCasting: {
		EventDied:              (*Machine).died,
		EventCancelAction:      (*Machine).cancelAction,
		EventTradeStarted:      (*Machine).startTrade,
		EventNavigate:          (*Machine).navigate,
		EventSkillRequest:      (*Machine).queueSkill,
		EventTargetDisappeared: (*Machine).abortAttack,
		EventTargetDied:        (*Machine).abortAttack,
		EventCastFinished:      (*Machine).finishCast,
	},
	StateTrading: {
		EventDied:              (*Machine).died,
		EventCancelAction:      (*Machine).leaveTrade,
		EventTargetDisappeared: (*Machine).leaveTrade,
		EventTargetDied:        (*Machine).leaveTrade,
		EventTradeDone:         (*Machine).leaveTrade,
	},
	StateDead: {
		EventRespawn: (*Machine).respawn,
	},
}

// Handles reports whether state s reacts to event ev.
func Handles(s State, ev Event) bool {
	_, ok := transitions[s][ev]
	return ok
}

// Machine advances entities one step at a time.
type Machine struct {
	lookup Lookup
	nav    Navigator
	notify Notifier
	rng    *rand.Rand
}

// NewMachine creates a state machine. rng drives block and critical rolls.
func NewMachine(lookup Lookup, nav Navigator, notify Notifier, rng *rand.Rand) *Machine {
	return &Machine{lookup: lookup, nav: nav, notify: notify, rng: rng}
}

// Step evaluates the events of e in priority order and takes the first
// handled transition. At most one transition happens per step.
func (m *Machine) Step(e *Entity, now time.Time) {
	from := e.State
	for _, ev := range eventOrder {
		if !m.fired(e, ev, now) {
			continue
		}
		h, ok := transitions[e.State][ev]
		if !ok {
			discard(e, ev)
			continue
		}
		next, handled := h(m, e, now)
		if !handled {
			continue
		}
		e.State = next
		if next != from {
			m.notify.Transition(e, from, next)
		}
		return
	}
}

func (m *Machine) fired(e *Entity, ev Event, now time.Time) bool {
	switch ev {
	case EventDied:
		return !e.Alive()
	case EventCancelAction:
		return e.Latches.Cancel
	case EventTradeStarted:
		_, ok := m.inviter(e)
		return ok
	case EventNavigate:
		return e.Latches.Navigate != nil
	case EventSkillRequest:
		return e.Latches.PendingSkill != NoSkill
	case EventMoveEnd:
		return m.nav.Arrived(e)
	case EventTargetDisappeared:
		_, ok := m.lookup.Lookup(m.targetOf(e))
		return !ok
	case EventTargetDied:
		t, ok := m.lookup.Lookup(m.targetOf(e))
		return ok && !t.Alive()
	case EventCastFinished:
		return e.castFinished(now)
	case EventTradeDone:
		other, ok := m.lookup.Lookup(e.TargetID)
		return !ok || !trade.Started(e, other)
	case EventRespawn:
		return e.Latches.Respawn
	}
	return false
}

// discard consumes a latch its state ignores.
func discard(e *Entity, ev Event) {
	switch ev {
	case EventCancelAction:
		e.Latches.Cancel = false
	case EventNavigate:
		e.Latches.Navigate = nil
	case EventSkillRequest:
		e.Latches.PendingSkill = NoSkill
	case EventRespawn:
		e.Latches.Respawn = false
	}
}

// targetOf is the entity a running cast acts on, or the selected target.
func (m *Machine) targetOf(e *Entity) string {
	if e.State == StateCasting && e.castTargetID != "" {
		return e.castTargetID
	}
	return e.TargetID
}

// inviter returns the party e is in a mutual invitation with.
func (m *Machine) inviter(e *Entity) (*Entity, bool) {
	if e.offer.RequestedBy == "" {
		return nil, false
	}
	other, ok := m.lookup.Lookup(e.offer.RequestedBy)
	if !ok || !trade.Started(e, other) {
		return nil, false
	}
	return other, true
}

func (m *Machine) died(e *Entity, now time.Time) (State, bool) {
	if e.State == StateTrading {
		m.cleanupTrade(e)
	}
	e.clearCast()
	e.Latches.PendingSkill = NoSkill
	e.targetQueued = false
	m.nav.Stop(e)
	e.stopBuffs()
	e.TargetID = ""

	var lost int64
	if e.IsPlayer() {
		before := e.Progress.Exp
		penalty := progression.DeathPenalty(e.table, e.Level(), e.catalog.Player().DeathExpLossPercent)
		e.Progress.SetExperience(e.table, before-penalty)
		lost = before - e.Progress.Exp
	}
	e.DiedAt = now
	m.notify.Died(e, e.LastAttackerID, lost)
	return StateDead, true
}

func (m *Machine) clearTarget(e *Entity, _ time.Time) (State, bool) {
	e.Latches.Cancel = false
	e.TargetID = ""
	return StateIdle, true
}

func (m *Machine) cancelAction(e *Entity, _ time.Time) (State, bool) {
	e.Latches.Cancel = false
	e.Latches.PendingSkill = NoSkill
	e.clearCast()
	e.applyQueuedTarget()
	m.nav.Stop(e)
	return StateIdle, true
}

func (m *Machine) startTrade(e *Entity, _ time.Time) (State, bool) {
	other, ok := m.inviter(e)
	if !ok {
		return e.State, false
	}
	e.clearCast()
	e.targetQueued = false
	e.Latches.PendingSkill = NoSkill
	m.nav.Stop(e)
	e.TargetID = other.ID
	e.offer.Reset()
	return StateTrading, true
}

func (m *Machine) navigate(e *Entity, _ time.Time) (State, bool) {
	d := *e.Latches.Navigate
	e.Latches.Navigate = nil
	e.Latches.PendingSkill = NoSkill
	e.clearCast()
	e.applyQueuedTarget()
	m.nav.Start(e, d)
	return StateMoving, true
}

// requestSkill validates the pending skill. In range it starts the cast;
// out of range it walks toward the target and keeps the request pending so
// it is re-validated every step of the approach.
func (m *Machine) requestSkill(e *Entity, now time.Time) (State, bool) {
	i := e.Latches.PendingSkill
	if !e.castCheckSelf(i, now) {
		e.Latches.PendingSkill = NoSkill
		return e.State, true
	}
	target, ok := e.castCheckTarget(i, m.lookup)
	if !ok {
		e.Latches.PendingSkill = NoSkill
		return e.State, true
	}
	if !e.castCheckDistance(i, target) {
		m.nav.Start(e, e.approachDestination(i, target))
		return StateMoving, true
	}
	e.Latches.PendingSkill = NoSkill
	m.nav.Stop(e)
	e.startCast(i, target, now)
	return StateCasting, true
}

func (m *Machine) moveEnd(e *Entity, _ time.Time) (State, bool) {
	m.nav.Stop(e)
	return StateIdle, true
}

func (m *Machine) queueSkill(e *Entity, _ time.Time) (State, bool) {
	e.NextSkill = e.Latches.PendingSkill
	e.Latches.PendingSkill = NoSkill
	return StateCasting, true
}

// abortAttack stops an attack whose target is gone. Other categories keep
// casting.
func (m *Machine) abortAttack(e *Entity, _ time.Time) (State, bool) {
	if !e.castingAttack() {
		return e.State, false
	}
	e.clearCast()
	e.applyQueuedTarget()
	return StateIdle, true
}

func (m *Machine) finishCast(e *Entity, now time.Time) (State, bool) {
	i := e.CurrentSkill
	lvl := e.skillLevel(i)
	target := e
	if e.castTargetID != e.ID {
		target, _ = m.lookup.Lookup(e.castTargetID)
	}

	e.Mp = max(e.Mp-lvl.Mana, 0)
	e.Skills[i].CastTimeEnd = time.Time{}
	e.Skills[i].CooldownEnd = now.Add(lvl.CooldownDuration())

	switch e.skillTemplate(i).Category {
	case domain.SkillCategoryAttack:
		if target != nil && target.Alive() {
			m.dealDamage(e, target, lvl.Damage, now)
		}
	case domain.SkillCategoryHeal:
		if target != nil && target.Alive() {
			target.Hp = min(target.Hp+lvl.Heal, target.Stats(now).HpMax)
		}
	case domain.SkillCategoryBuff:
		e.Skills[i].BuffTimeEnd = now.Add(lvl.BuffDuration())
	}

	next := e.NextSkill
	e.CurrentSkill = NoSkill
	e.NextSkill = NoSkill
	e.castTargetID = ""
	if next != NoSkill {
		e.Latches.PendingSkill = next
	}
	e.applyQueuedTarget()
	return StateIdle, true
}

// dealDamage applies max(1, damage-defense), halved on block and doubled on
// a critical hit, and settles the kill.
func (m *Machine) dealDamage(attacker, victim *Entity, skillDamage int, now time.Time) {
	as, vs := attacker.Stats(now), victim.Stats(now)
	dmg := max(as.Damage+skillDamage-vs.Defense, 1)
	if m.rng.Float64() < vs.Block {
		dmg = max(dmg/2, 1)
	}
	if m.rng.Float64() < as.Crit {
		dmg *= 2
	}
	victim.Hp = max(victim.Hp-dmg, 0)
	victim.LastAttackerID = attacker.ID
	if !victim.Alive() {
		m.rewardKill(attacker, victim)
	}
}

func (m *Machine) rewardKill(attacker, victim *Entity) {
	if !attacker.IsPlayer() {
		return
	}
	exp := progression.BalanceExpReward(victim.RewardExperience, victim.Level(), attacker.Level())
	if oldLevel, newLevel := attacker.GainExperience(exp); newLevel > oldLevel {
		m.notify.LevelUp(attacker, oldLevel, newLevel)
	}
	attacker.gold += victim.RewardGold
	if victim.Template != "" {
		attacker.Quests.IncreaseKillCounter(victim.Template)
	}
}

func (m *Machine) leaveTrade(e *Entity, _ time.Time) (State, bool) {
	e.Latches.Cancel = false
	m.cleanupTrade(e)
	return StateIdle, true
}

func (m *Machine) cleanupTrade(e *Entity) {
	if other, ok := m.lookup.Lookup(e.TargetID); ok {
		trade.Cleanup(e, other)
		return
	}
	trade.Cleanup(e, nil)
}

// respawn revives players at the revival point. Monsters are despawned
// instead, so the latch is dropped for them.
func (m *Machine) respawn(e *Entity, now time.Time) (State, bool) {
	e.Latches.Respawn = false
	if !e.IsPlayer() {
		return StateDead, true
	}
	p := e.catalog.Player()
	stats := e.Stats(now)
	e.Position = p.RevivalPoint
	e.Hp = max(int(math.Round(float64(stats.HpMax)*p.RevivalFraction)), 1)
	e.Mp = int(math.Round(float64(stats.MpMax) * p.RevivalFraction))
	e.LastAttackerID = ""
	e.DiedAt = time.Time{}
	m.notify.Respawned(e)
	return StateIdle, true
}
