package domain

import "math"

// Vec2 is a position on the ground plane.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance is the center-to-center distance.
func (v Vec2) Distance(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// MoveTowards steps from v toward target by at most maxDelta.
func (v Vec2) MoveTowards(target Vec2, maxDelta float64) Vec2 {
	d := v.Distance(target)
	if d <= maxDelta || d == 0 {
		return target
	}
	f := maxDelta / d
	return Vec2{X: v.X + (target.X-v.X)*f, Y: v.Y + (target.Y-v.Y)*f}
}

// EntityKind separates players from world-owned entities.
type EntityKind string

const (
	KindPlayer  EntityKind = "player"
	KindMonster EntityKind = "monster"
	KindNpc     EntityKind = "npc"
)

// PlayerTemplate holds the defaults every player character shares.
type PlayerTemplate struct {
	InventorySize       int      `json:"inventory_size"`
	EquipmentSlots      []string `json:"equipment_slots"`
	TradeOfferSlots     int      `json:"trade_offer_slots"`
	Radius              float64  `json:"radius"`
	Speed               float64  `json:"speed"`
	StartPosition       Vec2     `json:"start_position"`
	RevivalPoint        Vec2     `json:"revival_point"`
	RevivalFraction     float64  `json:"revival_fraction"`
	DeathExpLossPercent float64  `json:"death_exp_loss_percent"`
	QuestLimit          int      `json:"quest_limit"`
	InteractionRange    float64  `json:"interaction_range"`
	CraftMaxIngredients int      `json:"craft_max_ingredients"`
	StartGold           int64    `json:"start_gold"`
}

// MonsterTemplate is a fixed-level creature definition.
type MonsterTemplate struct {
	Name             string     `json:"name"`
	Level            int        `json:"level"`
	Stats            LevelStats `json:"stats"`
	Radius           float64    `json:"radius"`
	Speed            float64    `json:"speed"`
	RewardExperience int64      `json:"reward_experience"`
	RewardGold       int64      `json:"reward_gold"`
	CorpseSeconds    float64    `json:"corpse_seconds"`
}

// NpcTemplate defines a merchant or quest giver.
type NpcTemplate struct {
	Name      string   `json:"name"`
	SaleItems []string `json:"sale_items"`
	Quests    []string `json:"quests"`
	Radius    float64  `json:"radius"`
}

// Spawn places a monster or NPC template in the world at startup.
type Spawn struct {
	Kind     EntityKind `json:"kind"`
	Template string     `json:"template"`
	Position Vec2       `json:"position"`
}
