package entity

import (
	"github.com/Holmiboii/ummorpg/internal/domain"
)

// QuestResult describes a completed quest.
type QuestResult struct {
	Quest      string
	Gold       int64
	Experience int64
	OldLevel   int
	NewLevel   int
}

// CanInteract reports whether e may use npc's services: e is idle and alive,
// npc is e's live target and within reach.
func (e *Entity) CanInteract(npc *Entity, reach float64) bool {
	if npc == nil || npc.Kind != domain.KindNpc || !npc.Alive() {
		return false
	}
	if e.State != StateIdle || !e.Alive() || e.TargetID != npc.ID {
		return false
	}
	return SurfaceDistance(e, npc) <= reach
}

// BuyFromNpc buys amount units of npc's sale item index.
func (e *Entity) BuyFromNpc(npc *Entity, index, amount int, reach float64) bool {
	if !e.CanInteract(npc, reach) || index < 0 || index >= len(npc.SaleItems) || amount < 1 {
		return false
	}
	t, ok := e.catalog.Item(npc.SaleItems[index])
	if !ok || t.BuyPrice <= 0 {
		return false
	}
	price := t.BuyPrice * int64(amount)
	if e.gold < price || !e.inventory.CanAdd(t, amount) {
		return false
	}
	if !e.inventory.Add(t, amount) {
		return false
	}
	e.gold -= price
	return true
}

// SellToNpc sells amount units from inventory slot index.
func (e *Entity) SellToNpc(npc *Entity, index, amount int, reach float64) bool {
	if !e.CanInteract(npc, reach) || amount < 1 {
		return false
	}
	slot, ok := e.inventory.Slot(index)
	if !ok || !slot.Valid || slot.Amount < amount {
		return false
	}
	t, ok := e.inventory.Template(index)
	if !ok || !t.Sellable {
		return false
	}
	if !e.inventory.Consume(index, amount) {
		return false
	}
	e.gold += t.SellPrice * int64(amount)
	return true
}

// AcceptNpcQuest accepts the quest at questIndex of npc's list.
func (e *Entity) AcceptNpcQuest(npc *Entity, questIndex int, reach float64) bool {
	if !e.CanInteract(npc, reach) || questIndex < 0 || questIndex >= len(npc.OfferedQuests) {
		return false
	}
	return e.Quests.Accept(npc.OfferedQuests[questIndex], e.Level())
}

// CompleteNpcQuest completes the quest at questIndex of npc's list and
// grants its gold and experience.
func (e *Entity) CompleteNpcQuest(npc *Entity, questIndex int, reach float64) (QuestResult, bool) {
	if !e.CanInteract(npc, reach) || questIndex < 0 || questIndex >= len(npc.OfferedQuests) {
		return QuestResult{}, false
	}
	name := npc.OfferedQuests[questIndex]
	reward, ok := e.Quests.Complete(name, e.inventory)
	if !ok {
		return QuestResult{}, false
	}
	e.gold += reward.Gold
	oldLevel, newLevel := e.GainExperience(reward.Experience)
	return QuestResult{
		Quest:      name,
		Gold:       reward.Gold,
		Experience: reward.Experience,
		OldLevel:   oldLevel,
		NewLevel:   newLevel,
	}, true
}
