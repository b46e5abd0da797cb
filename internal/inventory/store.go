// Package inventory implements the fixed-length slot sequences used for
// inventories and equipment. Every mutating method re-checks its own
// preconditions and reports whether it applied; a rejected call leaves the
// store untouched.
package inventory

import (
	"log/slog"

	"github.com/Holmiboii/ummorpg/internal/domain"
)

// ItemCatalog resolves item templates by name.
type ItemCatalog interface {
	Item(name string) (domain.ItemTemplate, bool)
}

// Change describes one slot mutation.
type Change struct {
	Index int
	Old   domain.ItemSlot
	New   domain.ItemSlot
}

// Observer receives slot changes after they are applied.
type Observer func(Change)

// ViolationFunc is called when a mutation cannot complete although its
// pre-check passed.
type ViolationFunc func(detail string)

// Store is an observable, fixed-length sequence of item slots. An equipment
// store additionally carries one type label per slot.
type Store struct {
	slots     []domain.ItemSlot
	labels    []string
	items     ItemCatalog
	observers []Observer
	violation ViolationFunc
}

// New creates an inventory store with size empty slots.
func New(size int, items ItemCatalog) *Store {
	return &Store{
		slots: make([]domain.ItemSlot, size),
		items: items,
	}
}

// NewEquipment creates an equipment store with one empty slot per label.
func NewEquipment(labels []string, items ItemCatalog) *Store {
	return &Store{
		slots:  make([]domain.ItemSlot, len(labels)),
		labels: append([]string(nil), labels...),
		items:  items,
	}
}

// Subscribe registers an observer for slot changes.
func (s *Store) Subscribe(o Observer) {
	s.observers = append(s.observers, o)
}

// OnViolation sets the invariant violation reporter.
func (s *Store) OnViolation(fn ViolationFunc) {
	s.violation = fn
}

// Len is the fixed slot count.
func (s *Store) Len() int {
	return len(s.slots)
}

// IsEquipment reports whether the store has slot type labels.
func (s *Store) IsEquipment() bool {
	return s.labels != nil
}

// Label returns the type label of an equipment slot.
func (s *Store) Label(i int) string {
	if i < 0 || i >= len(s.labels) {
		return ""
	}
	return s.labels[i]
}

// Slot returns the slot at i; ok is false for an out-of-range index.
func (s *Store) Slot(i int) (domain.ItemSlot, bool) {
	if !s.inRange(i) {
		return domain.ItemSlot{}, false
	}
	return s.slots[i], true
}

// Slots returns a copy of all slots.
func (s *Store) Slots() []domain.ItemSlot {
	return append([]domain.ItemSlot(nil), s.slots...)
}

// Restore overwrites the slots from persisted data without notifying
// observers. Extra entries are dropped; missing entries stay empty.
func (s *Store) Restore(slots []domain.ItemSlot) {
	for i := range s.slots {
		s.slots[i] = domain.EmptySlot()
		if i < len(slots) && slots[i].Valid && slots[i].Amount > 0 {
			s.slots[i] = slots[i]
		}
	}
}

// Template resolves the template of a valid slot.
func (s *Store) Template(i int) (domain.ItemTemplate, bool) {
	slot, ok := s.Slot(i)
	if !ok || !slot.Valid {
		return domain.ItemTemplate{}, false
	}
	return s.items.Item(slot.Name)
}

// Count returns the total amount of the named item across all slots.
func (s *Store) Count(name string) int {
	total := 0
	for _, slot := range s.slots {
		if slot.Is(name) {
			total += slot.Amount
		}
	}
	return total
}

// FreeSlots counts empty slots.
func (s *Store) FreeSlots() int {
	free := 0
	for _, slot := range s.slots {
		if !slot.Valid {
			free++
		}
	}
	return free
}

// FirstFree returns the index of the first empty slot, or -1.
func (s *Store) FirstFree() int {
	for i, slot := range s.slots {
		if !slot.Valid {
			return i
		}
	}
	return -1
}

func (s *Store) inRange(i int) bool {
	return i >= 0 && i < len(s.slots)
}

func (s *Store) set(i int, slot domain.ItemSlot) {
	if slot.Valid && slot.Amount <= 0 {
		slot = domain.EmptySlot()
	}
	old := s.slots[i]
	s.slots[i] = slot
	if old == slot {
		return
	}
	for _, o := range s.observers {
		o(Change{Index: i, Old: old, New: slot})
	}
}

func (s *Store) reportViolation(detail string) {
	if s.violation != nil {
		s.violation(detail)
		return
	}
	slog.Error(LogMsgInvariantViolation, "detail", detail)
}
