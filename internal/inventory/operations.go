package inventory

import (
	"fmt"

	"github.com/Holmiboii/ummorpg/internal/domain"
)

// CanAdd reports whether amount items of t fit: free space on existing stacks
// of the same type first, then full stacks in empty slots. It never mutates.
func (s *Store) CanAdd(t domain.ItemTemplate, amount int) bool {
	if amount < 0 || t.MaxStack < 1 {
		return false
	}
	remaining := amount
	for _, slot := range s.slots {
		if remaining <= 0 {
			return true
		}
		if slot.Is(t.Name) {
			remaining -= max(t.MaxStack-slot.Amount, 0)
		} else if !slot.Valid {
			remaining -= t.MaxStack
		}
	}
	return remaining <= 0
}

// Add inserts amount items of t, topping up existing stacks before filling
// empty slots in index order. It applies only when CanAdd holds.
func (s *Store) Add(t domain.ItemTemplate, amount int) bool {
	if amount <= 0 || !s.CanAdd(t, amount) {
		return false
	}

	remaining := amount
	for i, slot := range s.slots {
		if remaining == 0 {
			break
		}
		if slot.Is(t.Name) && slot.Amount < t.MaxStack {
			moved := min(t.MaxStack-slot.Amount, remaining)
			slot.Amount += moved
			s.set(i, slot)
			remaining -= moved
		}
	}
	for i, slot := range s.slots {
		if remaining == 0 {
			break
		}
		if !slot.Valid {
			moved := min(t.MaxStack, remaining)
			s.set(i, domain.NewItemSlot(t.Name, moved))
			remaining -= moved
		}
	}

	if remaining != 0 {
		s.reportViolation(fmt.Sprintf(ErrFmtAddRemainder, remaining, amount, t.Name))
	}
	return true
}

// RemoveByName removes amount items of the named type, draining slots in index
// order. It is atomic: when the store holds fewer than amount nothing is
// removed and false is returned.
func (s *Store) RemoveByName(name string, amount int) bool {
	if amount <= 0 || s.Count(name) < amount {
		return false
	}

	remaining := amount
	for i, slot := range s.slots {
		if remaining == 0 {
			break
		}
		if slot.Is(name) {
			taken := min(slot.Amount, remaining)
			slot.Amount -= taken
			s.set(i, slot)
			remaining -= taken
		}
	}
	return true
}

// Consume removes amount items from slot i, clearing it at zero.
func (s *Store) Consume(i, amount int) bool {
	slot, ok := s.Slot(i)
	if !ok || !slot.Valid || amount <= 0 || amount > slot.Amount {
		return false
	}
	slot.Amount -= amount
	s.set(i, slot)
	return true
}

// Split moves half of slot from (rounded down) into the empty slot to.
func (s *Store) Split(from, to int) bool {
	if from == to || !s.inRange(from) || !s.inRange(to) {
		return false
	}
	src, dst := s.slots[from], s.slots[to]
	if !src.Valid || src.Amount < 2 || dst.Valid {
		return false
	}

	half := src.Amount / 2
	src.Amount -= half
	s.set(from, src)
	s.set(to, domain.NewItemSlot(src.Name, half))
	return true
}

// Merge moves as many items from slot from onto the same-type stack at to as
// its max stack allows, clearing from when it empties.
func (s *Store) Merge(from, to int) bool {
	if from == to || !s.inRange(from) || !s.inRange(to) {
		return false
	}
	src, dst := s.slots[from], s.slots[to]
	if !src.Valid || !dst.Valid || src.Name != dst.Name {
		return false
	}
	t, ok := s.items.Item(dst.Name)
	if !ok {
		return false
	}

	moved := min(src.Amount+dst.Amount, t.MaxStack) - dst.Amount
	if moved <= 0 {
		return false
	}
	dst.Amount += moved
	src.Amount -= moved
	s.set(to, dst)
	s.set(from, src)
	return true
}

// Swap exchanges two inventory slots. Equipment stores only change through
// SwapWithEquipment, which checks slot compatibility.
func (s *Store) Swap(i, j int) bool {
	if s.IsEquipment() || i == j || !s.inRange(i) || !s.inRange(j) {
		return false
	}
	a, b := s.slots[i], s.slots[j]
	s.set(i, b)
	s.set(j, a)
	return true
}

// Extract empties slot i and returns what it held.
func (s *Store) Extract(i int) (domain.ItemSlot, bool) {
	slot, ok := s.Slot(i)
	if !ok || !slot.Valid {
		return domain.ItemSlot{}, false
	}
	s.set(i, domain.EmptySlot())
	return slot, true
}

// PlaceInEmpty puts a whole stack into the first empty slot.
func (s *Store) PlaceInEmpty(slot domain.ItemSlot) bool {
	if !slot.Valid {
		return false
	}
	i := s.FirstFree()
	if i < 0 {
		return false
	}
	s.set(i, slot)
	return true
}

// CanEquip reports whether slot may sit in equipment slot index for an owner
// of the given level. An empty slot always fits.
func (s *Store) CanEquip(index int, slot domain.ItemSlot, level int) bool {
	if !s.IsEquipment() || !s.inRange(index) {
		return false
	}
	if !slot.Valid {
		return true
	}
	t, ok := s.items.Item(slot.Name)
	if !ok {
		return false
	}
	return t.FitsEquipmentSlot(s.labels[index]) && level >= t.MinLevel
}

// EquipIndexFor returns the first equipment slot the item may occupy, or -1.
// Empty compatible slots are preferred over occupied ones.
func (s *Store) EquipIndexFor(slot domain.ItemSlot, level int) int {
	occupied := -1
	for i := range s.slots {
		if !s.CanEquip(i, slot, level) {
			continue
		}
		if !s.slots[i].Valid {
			return i
		}
		if occupied < 0 {
			occupied = i
		}
	}
	return occupied
}

// SwapWithEquipment exchanges inventory slot invIndex with equipment slot
// equipIndex when the item moving into equipment is compatible with it.
func SwapWithEquipment(inv *Store, invIndex int, equip *Store, equipIndex int, level int) bool {
	if inv.IsEquipment() || !inv.inRange(invIndex) || !equip.inRange(equipIndex) {
		return false
	}
	moving := inv.slots[invIndex]
	if !equip.CanEquip(equipIndex, moving, level) {
		return false
	}
	current := equip.slots[equipIndex]
	inv.set(invIndex, current)
	equip.set(equipIndex, moving)
	return true
}
