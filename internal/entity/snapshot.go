package entity

import (
	"time"

	"github.com/Holmiboii/ummorpg/internal/catalog"
	"github.com/Holmiboii/ummorpg/internal/domain"
)

// Snapshot captures a player for persistence. Skill timers are stored as
// seconds remaining at now.
func (e *Entity) Snapshot(now time.Time) domain.CharacterSnapshot {
	snap := domain.CharacterSnapshot{
		ID:         e.ID,
		Name:       e.Name,
		Position:   e.Position,
		Level:      e.Progress.Level,
		Experience: e.Progress.Exp,
		Hp:         e.Hp,
		Mp:         e.Mp,
		Attributes: e.Attributes,
		Gold:       e.gold,
		Inventory:  e.inventory.Slots(),
		Equipment:  e.equipment.Slots(),
		Quests:     e.Quests.Quests(),
	}
	for _, s := range e.Skills {
		snap.Skills = append(snap.Skills, domain.SkillRecord{
			Name:              s.Name,
			Learned:           s.Learned,
			Level:             s.Level,
			CastTimeRemaining: Remaining(s.CastTimeEnd, now).Seconds(),
			CooldownRemaining: Remaining(s.CooldownEnd, now).Seconds(),
			BuffTimeRemaining: Remaining(s.BuffTimeEnd, now).Seconds(),
		})
	}
	return snap
}

// FromSnapshot rebuilds a player from its persisted form against the current
// catalog. Stored values that no longer fit are repaired: levels and vitals
// are clamped, unknown templates dropped, stacks capped, and equipment the
// character may not wear is moved to the inventory. Items that cannot be
// kept are returned. A character saved dead is restored dead.
func FromSnapshot(snap domain.CharacterSnapshot, c *catalog.Catalog, now time.Time) (*Entity, []domain.ItemSlot) {
	e := NewPlayer(snap.ID, snap.Name, c)
	e.Position = snap.Position
	e.Attributes = snap.Attributes
	e.gold = max(snap.Gold, 0)
	e.Progress.Level = min(max(snap.Level, 1), e.table.MaxLevel())
	e.Progress.Exp = min(max(snap.Experience, 0), e.table.Stats(e.Progress.Level).ExpMax)

	byName := make(map[string]domain.SkillRecord, len(snap.Skills))
	for _, r := range snap.Skills {
		byName[r.Name] = r
	}
	for i, t := range c.Skills() {
		r, ok := byName[t.Name]
		if !ok {
			continue
		}
		e.Skills[i] = Skill{
			Name:        t.Name,
			Learned:     r.Learned,
			Level:       min(max(r.Level, 0), t.MaxLevel()),
			CastTimeEnd: restoreTimer(r.CastTimeRemaining, now),
			CooldownEnd: restoreTimer(r.CooldownRemaining, now),
			BuffTimeEnd: restoreTimer(r.BuffTimeRemaining, now),
		}
		if e.Skills[i].Learned && e.Skills[i].Level == 0 {
			e.Skills[i].Level = 1
		}
	}

	var quests []domain.Quest
	for _, q := range snap.Quests {
		t, ok := c.Quest(q.Name)
		if !ok {
			continue
		}
		q.Killed = min(max(q.Killed, 0), t.KillAmount)
		quests = append(quests, q)
	}
	e.Quests.Restore(quests)

	var dropped []domain.ItemSlot
	inv := make([]domain.ItemSlot, e.inventory.Len())
	for i, s := range snap.Inventory {
		s, excess := sanitizeSlot(s, c)
		dropped = append(dropped, excess...)
		if i < len(inv) {
			inv[i] = s
		} else if s.Valid {
			dropped = append(dropped, s)
		}
	}
	e.inventory.Restore(inv)

	equip := make([]domain.ItemSlot, e.equipment.Len())
	var unfit []domain.ItemSlot
	for i, s := range snap.Equipment {
		s, excess := sanitizeSlot(s, c)
		dropped = append(dropped, excess...)
		if i < len(equip) && e.equipment.CanEquip(i, s, e.Level()) {
			equip[i] = s
		} else if s.Valid {
			unfit = append(unfit, s)
		}
	}
	e.equipment.Restore(equip)
	for _, s := range unfit {
		if !e.inventory.PlaceInEmpty(s) {
			dropped = append(dropped, s)
		}
	}

	stats := e.Stats(now)
	e.Hp = min(max(snap.Hp, 0), stats.HpMax)
	e.Mp = min(max(snap.Mp, 0), stats.MpMax)
	if e.Hp == 0 {
		e.State = StateDead
	}
	return e, dropped
}

// sanitizeSlot drops unknown templates and caps the stack size, returning
// what had to be removed.
func sanitizeSlot(s domain.ItemSlot, c *catalog.Catalog) (domain.ItemSlot, []domain.ItemSlot) {
	if !s.Valid {
		return domain.EmptySlot(), nil
	}
	t, ok := c.Item(s.Name)
	if !ok || s.Amount < 1 {
		return domain.EmptySlot(), []domain.ItemSlot{s}
	}
	if s.Amount > t.MaxStack {
		return domain.NewItemSlot(s.Name, t.MaxStack), []domain.ItemSlot{domain.NewItemSlot(s.Name, s.Amount-t.MaxStack)}
	}
	return s, nil
}

func restoreTimer(remaining float64, now time.Time) time.Time {
	if remaining <= 0 {
		return time.Time{}
	}
	return now.Add(time.Duration(remaining * float64(time.Second)))
}
