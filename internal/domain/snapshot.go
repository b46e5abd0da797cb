package domain

// CharacterSnapshot is the persisted form of a player. Skill timers are stored
// as remaining seconds relative to the save instant and turned back into
// absolute end times on load.
type CharacterSnapshot struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Position   Vec2          `json:"position"`
	Level      int           `json:"level"`
	Experience int64         `json:"experience"`
	Hp         int           `json:"hp"`
	Mp         int           `json:"mp"`
	Attributes Attributes    `json:"attributes"`
	Gold       int64         `json:"gold"`
	Inventory  []ItemSlot    `json:"inventory"`
	Equipment  []ItemSlot    `json:"equipment"`
	Skills     []SkillRecord `json:"skills"`
	Quests     []Quest       `json:"quests"`
}

// SkillRecord is a skill with relative timers in seconds.
type SkillRecord struct {
	Name              string  `json:"name"`
	Learned           bool    `json:"learned"`
	Level             int     `json:"level"`
	CastTimeRemaining float64 `json:"cast_time_remaining"`
	CooldownRemaining float64 `json:"cooldown_remaining"`
	BuffTimeRemaining float64 `json:"buff_time_remaining"`
}
