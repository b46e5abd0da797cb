// Package fixture builds small, fully known catalogs for unit tests.
package fixture

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Holmiboii/ummorpg/internal/catalog"
	"github.com/Holmiboii/ummorpg/internal/domain"
)

// Template names used by the fixture catalog.
const (
	HealthPotion = "health_potion"
	ManaPotion   = "mana_potion"
	Wood         = "wood"
	IronOre      = "iron_ore"
	WolfPelt     = "wolf_pelt"
	WoodenSword  = "wooden_sword"
	IronSword    = "iron_sword"
	LeatherCap   = "leather_cap"
	BoundRing    = "soulbound_ring"

	SkillStrike    = "strike"
	SkillSlash     = "slash"
	SkillMend      = "mend"
	SkillEndurance = "endurance"

	QuestWolfHunt = "wolf_hunt"
	QuestPelts    = "pelt_collector"

	MonsterWolf = "wolf"
	NpcMerchant = "merchant"
)

// Skill indices in the fixture catalog order.
const (
	StrikeIndex = iota
	SlashIndex
	MendIndex
	EnduranceIndex
)

// InventorySize is the fixture player inventory length.
const InventorySize = 8

// File returns the fixture catalog definition. Level expMax values are
// 10, 15 and 20 and the level cap is 3.
func File() catalog.File {
	return catalog.File{
		Version: "test",
		Player: domain.PlayerTemplate{
			InventorySize:       InventorySize,
			EquipmentSlots:      []string{"Weapon", "Head"},
			TradeOfferSlots:     4,
			Radius:              0.5,
			Speed:               5,
			RevivalPoint:        domain.Vec2{X: -10, Y: -10},
			RevivalFraction:     0.5,
			DeathExpLossPercent: 0.1,
			QuestLimit:          2,
			InteractionRange:    4,
			CraftMaxIngredients: 4,
			StartGold:           100,
		},
		Levels: []domain.LevelStats{
			{HpMax: 100, MpMax: 50, Damage: 10, Defense: 2, ExpMax: 10, HpRecovery: 1, MpRecovery: 1},
			{HpMax: 120, MpMax: 60, Damage: 12, Defense: 3, ExpMax: 15, HpRecovery: 1, MpRecovery: 1},
			{HpMax: 140, MpMax: 70, Damage: 14, Defense: 4, ExpMax: 20, HpRecovery: 2, MpRecovery: 1},
		},
		Items: []domain.ItemTemplate{
			{Name: HealthPotion, Category: "Potion", Kind: domain.ItemKindPotion, MaxStack: 5, BuyPrice: 10, SellPrice: 3, Tradable: true, Sellable: true, UsageHp: 50},
			{Name: ManaPotion, Category: "Potion", Kind: domain.ItemKindPotion, MaxStack: 5, BuyPrice: 12, SellPrice: 4, Tradable: true, Sellable: true, UsageMp: 40},
			{Name: Wood, Category: "Material", Kind: domain.ItemKindItem, MaxStack: 10, BuyPrice: 2, SellPrice: 1, Tradable: true, Sellable: true},
			{Name: IronOre, Category: "Material", Kind: domain.ItemKindItem, MaxStack: 10, Tradable: true, Sellable: true, SellPrice: 2},
			{Name: WolfPelt, Category: "Material", Kind: domain.ItemKindItem, MaxStack: 10, Tradable: true, Sellable: true, SellPrice: 5},
			{Name: WoodenSword, Category: "WeaponSword", Kind: domain.ItemKindEquipment, MaxStack: 1, BuyPrice: 30, Tradable: true, Sellable: true, EquipDamageBonus: 4},
			{Name: IronSword, Category: "WeaponSword", Kind: domain.ItemKindEquipment, MaxStack: 1, Tradable: true, MinLevel: 3, EquipDamageBonus: 10},
			{Name: LeatherCap, Category: "HeadLeather", Kind: domain.ItemKindEquipment, MaxStack: 1, Tradable: true, EquipHpBonus: 10, EquipDefenseBonus: 2},
			{Name: BoundRing, Category: "Trinket", Kind: domain.ItemKindItem, MaxStack: 1},
		},
		Skills: []domain.SkillTemplate{
			{Name: SkillStrike, Category: domain.SkillCategoryAttack, LearnDefault: true, Levels: []domain.SkillLevel{
				{RequiredLevel: 1, CastTime: 1, Cooldown: 2, CastRange: 2, Damage: 5},
				{RequiredLevel: 2, Cost: 20, CastTime: 1, Cooldown: 2, CastRange: 2, Damage: 9},
			}},
			{Name: SkillSlash, Category: domain.SkillCategoryAttack, RequiredWeaponCategory: "WeaponSword", Levels: []domain.SkillLevel{
				{RequiredLevel: 2, Cost: 30, Mana: 10, CastTime: 1, Cooldown: 4, CastRange: 2.5, Damage: 20},
			}},
			{Name: SkillMend, Category: domain.SkillCategoryHeal, LearnDefault: true, Levels: []domain.SkillLevel{
				{RequiredLevel: 1, Mana: 15, CastTime: 1, Cooldown: 6, CastRange: 8, Heal: 30},
			}},
			{Name: SkillEndurance, Category: domain.SkillCategoryBuff, Levels: []domain.SkillLevel{
				{RequiredLevel: 1, Cost: 50, Mana: 20, CastTime: 1, Cooldown: 30, BuffTime: 20, BuffsHpMax: 30, BuffsDefense: 4, BuffsHpPercentPerSecond: 0.1},
			}},
		},
		Quests: []domain.QuestTemplate{
			{Name: QuestWolfHunt, RequiredLevel: 1, RewardGold: 50, RewardExperience: 5, KillTarget: MonsterWolf, KillAmount: 3},
			{Name: QuestPelts, RequiredLevel: 1, Predecessor: QuestWolfHunt, RewardGold: 80, RewardExperience: 12, RewardItem: LeatherCap, GatherItem: WolfPelt, GatherAmount: 2},
		},
		Recipes: []domain.Recipe{
			{Ingredients: []string{Wood, Wood, IronOre}, Result: WoodenSword},
			{Ingredients: []string{IronOre, IronOre, IronOre, Wood}, Result: IronSword},
		},
		Monsters: []domain.MonsterTemplate{
			{Name: MonsterWolf, Level: 2, Radius: 0.5, Speed: 4, RewardExperience: 6, RewardGold: 3, CorpseSeconds: 10,
				Stats: domain.LevelStats{HpMax: 40, Damage: 6, Defense: 1, ExpMax: 1}},
		},
		Npcs: []domain.NpcTemplate{
			{Name: NpcMerchant, Radius: 0.5, SaleItems: []string{HealthPotion, Wood, WoodenSword}, Quests: []string{QuestWolfHunt, QuestPelts}},
		},
	}
}

// Catalog builds the fixture catalog and fails the test on error.
func Catalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(File())
	require.NoError(t, err)
	return c
}
