package entity

import (
	"time"

	"github.com/Holmiboii/ummorpg/internal/crafting"
	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/inventory"
)

// canMutateInventory is false while trading or dead; open offers reference
// inventory indices.
func (e *Entity) canMutateInventory() bool {
	return e.Alive() && e.State != StateTrading && e.State != StateDead
}

// SwapInventory swaps two inventory slots.
func (e *Entity) SwapInventory(i, j int) bool {
	return e.canMutateInventory() && e.inventory.Swap(i, j)
}

// SplitInventory moves half of slot from into the empty slot to.
func (e *Entity) SplitInventory(from, to int) bool {
	return e.canMutateInventory() && e.inventory.Split(from, to)
}

// MergeInventory stacks slot from onto slot to.
func (e *Entity) MergeInventory(from, to int) bool {
	return e.canMutateInventory() && e.inventory.Merge(from, to)
}

// UseItem drinks a potion or equips an equipment item from inventory slot i.
func (e *Entity) UseItem(i int, now time.Time) bool {
	if !e.canMutateInventory() {
		return false
	}
	t, ok := e.inventory.Template(i)
	if !ok {
		return false
	}
	switch t.Kind {
	case domain.ItemKindPotion:
		if !e.inventory.Consume(i, 1) {
			return false
		}
		stats := e.Stats(now)
		e.Hp = min(e.Hp+t.UsageHp, stats.HpMax)
		e.Mp = min(e.Mp+t.UsageMp, stats.MpMax)
		return true
	case domain.ItemKindEquipment:
		slot, _ := e.inventory.Slot(i)
		target := e.equipment.EquipIndexFor(slot, e.Level())
		if target < 0 {
			return false
		}
		return e.SwapEquipment(i, target, now)
	}
	return false
}

// SwapEquipment exchanges inventory slot invIndex with equipment slot
// equipIndex. Vitals are clamped when the swap lowers the maxima.
func (e *Entity) SwapEquipment(invIndex, equipIndex int, now time.Time) bool {
	if !e.canMutateInventory() {
		return false
	}
	if !inventory.SwapWithEquipment(e.inventory, invIndex, e.equipment, equipIndex, e.Level()) {
		return false
	}
	e.ClampVitals(now)
	return true
}

// Craft combines the selected inventory slots. Crafting needs the entity
// idle.
func (e *Entity) Craft(r *crafting.Resolver, indices []int) (domain.Recipe, bool) {
	if e.State != StateIdle || !e.Alive() {
		return domain.Recipe{}, false
	}
	return r.Craft(e.inventory, indices)
}

// CanTradeWith reports whether e may invite or answer other: two distinct
// live players, neither trading, within reach.
func (e *Entity) CanTradeWith(other *Entity, reach float64) bool {
	if other == nil || other == e || !e.IsPlayer() || !other.IsPlayer() {
		return false
	}
	if !e.Alive() || !other.Alive() || e.State == StateTrading || other.State == StateTrading {
		return false
	}
	return SurfaceDistance(e, other) <= reach
}

// TradingWith reports whether e is in a trade session with other.
func (e *Entity) TradingWith(other *Entity) bool {
	return other != nil && e.State == StateTrading && e.TargetID == other.ID
}
