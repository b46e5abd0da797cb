package domain

import "strings"

// ItemKind selects what "use" does with an item.
type ItemKind string

const (
	ItemKindItem      ItemKind = "item"
	ItemKindEquipment ItemKind = "equipment"
	ItemKindPotion    ItemKind = "potion"
)

// ItemTemplate is the shared, read-only definition of an item type.
// Slots reference templates by Name.
type ItemTemplate struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name,omitempty"`
	Category    string   `json:"category"`
	Kind        ItemKind `json:"kind"`
	MaxStack    int      `json:"max_stack"`
	BuyPrice    int64    `json:"buy_price"`
	SellPrice   int64    `json:"sell_price"`
	Tradable    bool     `json:"tradable"`
	Sellable    bool     `json:"sellable"`
	MinLevel    int      `json:"min_level"`

	// Equipment bonuses, applied while the item sits in an equipment slot.
	EquipHpBonus      int     `json:"equip_hp_bonus"`
	EquipMpBonus      int     `json:"equip_mp_bonus"`
	EquipDamageBonus  int     `json:"equip_damage_bonus"`
	EquipDefenseBonus int     `json:"equip_defense_bonus"`
	EquipBlockBonus   float64 `json:"equip_block_bonus"`
	EquipCritBonus    float64 `json:"equip_crit_bonus"`

	// Potion effects.
	UsageHp int `json:"usage_hp"`
	UsageMp int `json:"usage_mp"`
}

// FitsEquipmentSlot reports whether the template's category is compatible with
// an equipment slot label. Labels are category prefixes, so "Weapon" accepts
// "WeaponSword".
func (t ItemTemplate) FitsEquipmentSlot(label string) bool {
	return t.Kind == ItemKindEquipment && label != "" && strings.HasPrefix(t.Category, label)
}

// ItemSlot is either an item stack or an empty slot. When Valid is false the
// other fields carry no meaning.
type ItemSlot struct {
	Name   string `json:"name,omitempty"`
	Valid  bool   `json:"valid"`
	Amount int    `json:"amount,omitempty"`
}

// EmptySlot returns an invalid slot.
func EmptySlot() ItemSlot {
	return ItemSlot{}
}

// NewItemSlot returns a valid stack of amount items of the named template.
func NewItemSlot(name string, amount int) ItemSlot {
	return ItemSlot{Name: name, Valid: true, Amount: amount}
}

// Is reports whether the slot holds a stack of the named template.
func (s ItemSlot) Is(name string) bool {
	return s.Valid && s.Name == name
}
