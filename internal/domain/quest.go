package domain

// QuestTemplate is the static definition of a quest. A zero KillAmount or
// GatherAmount means the quest has no such requirement.
type QuestTemplate struct {
	Name             string `json:"name"`
	RequiredLevel    int    `json:"required_level"`
	Predecessor      string `json:"predecessor,omitempty"`
	RewardGold       int64  `json:"reward_gold"`
	RewardExperience int64  `json:"reward_experience"`
	RewardItem       string `json:"reward_item,omitempty"`
	KillTarget       string `json:"kill_target,omitempty"`
	KillAmount       int    `json:"kill_amount"`
	GatherItem       string `json:"gather_item,omitempty"`
	GatherAmount     int    `json:"gather_amount"`
}

// Quest is a per-entity quest instance. Gather progress is not stored; it is
// the live inventory count of the gather item.
type Quest struct {
	Name      string `json:"name"`
	Killed    int    `json:"killed"`
	Completed bool   `json:"completed"`
}
