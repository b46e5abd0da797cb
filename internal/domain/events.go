package domain

// Event type constants used for event bus subscriptions, SSE filters and
// metrics labels.
//
// Event types follow the pattern: <entity>.<action> (e.g., "trade.completed")
const (
	EventTypeEntityDied         = "entity.died"
	EventTypeEntityRespawned    = "entity.respawned"
	EventTypeLevelUp            = "entity.level_up"
	EventTypeTradeCompleted     = "trade.completed"
	EventTypeTradeAborted       = "trade.aborted"
	EventTypeItemCrafted        = "item.crafted"
	EventTypeQuestCompleted     = "quest.completed"
	EventTypeEquipmentChanged   = "equipment.changed"
	EventTypeInvariantViolation = "invariant.violation"
)

// EntityDiedPayload is published when an entity enters DEAD.
type EntityDiedPayload struct {
	EntityID string `json:"entity_id"`
	KillerID string `json:"killer_id,omitempty"`
	ExpLost  int64  `json:"exp_lost"`
}

// EntityRespawnedPayload is published when a DEAD entity respawns.
type EntityRespawnedPayload struct {
	EntityID string `json:"entity_id"`
	Position Vec2   `json:"position"`
}

// LevelUpPayload is published once per experience grant that raised the level.
type LevelUpPayload struct {
	EntityID string `json:"entity_id"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
}

// TradePayload describes the two parties of a finished or aborted trade.
type TradePayload struct {
	EntityID string `json:"entity_id"`
	OtherID  string `json:"other_id"`
	Reason   string `json:"reason,omitempty"`
}

// ItemCraftedPayload is published after a successful craft.
type ItemCraftedPayload struct {
	EntityID    string   `json:"entity_id"`
	Result      string   `json:"result"`
	Ingredients []string `json:"ingredients"`
}

// QuestCompletedPayload is published after a quest reward is granted.
type QuestCompletedPayload struct {
	EntityID string `json:"entity_id"`
	Quest    string `json:"quest"`
}

// EquipmentChangedPayload carries one observable equipment slot change.
type EquipmentChangedPayload struct {
	EntityID string   `json:"entity_id"`
	Index    int      `json:"index"`
	Old      ItemSlot `json:"old"`
	New      ItemSlot `json:"new"`
}

// InvariantViolationPayload reports a failed post-condition that a pre-check
// should have guaranteed.
type InvariantViolationPayload struct {
	EntityID  string `json:"entity_id,omitempty"`
	Component string `json:"component"`
	Detail    string `json:"detail"`
}
