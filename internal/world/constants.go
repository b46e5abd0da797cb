package world

import "time"

// Command kinds accepted by Submit and the HTTP transport.
const (
	KindNavigate            = "navigate"
	KindCancelAction        = "cancel_action"
	KindUseSkill            = "use_skill"
	KindLearnSkill          = "learn_skill"
	KindUpgradeSkill        = "upgrade_skill"
	KindSetTarget           = "set_target"
	KindRespawn             = "respawn"
	KindInventorySwap       = "inventory_swap"
	KindInventorySplit      = "inventory_split"
	KindInventoryMerge      = "inventory_merge"
	KindInventoryUse        = "inventory_use"
	KindEquipSwap           = "equip_swap"
	KindTradeRequest        = "trade_request"
	KindTradeAcceptInvite   = "trade_accept_invite"
	KindTradeDecline        = "trade_decline"
	KindTradeOfferGold      = "trade_offer_gold"
	KindTradeOfferItem      = "trade_offer_item"
	KindTradeClearOfferItem = "trade_clear_offer_item"
	KindTradeLock           = "trade_lock"
	KindTradeAccept         = "trade_accept"
	KindTradeCancel         = "trade_cancel"
	KindCraft               = "craft"
	KindQuestAccept         = "quest_accept"
	KindQuestComplete       = "quest_complete"
	KindNpcBuy              = "npc_buy"
	KindNpcSell             = "npc_sell"
)

// Components named in invariant violation reports.
const (
	ComponentInventory = "inventory"
	ComponentEquipment = "equipment"
	ComponentTrade     = "trade"
)

// Defaults
const (
	DefaultRecoveryInterval = time.Second
	DefaultMaxInbox         = 4096
)

// Log messages
const (
	LogMsgInvariantViolation = "Invariant violation"
	LogMsgPublishFailed      = "Failed to publish world event"
	LogMsgSpawnSkipped       = "Spawn skipped, template missing"
	LogMsgCorpseDespawned    = "Corpse despawned"
)

// Error messages
const (
	ErrMsgInboxFull = "command inbox full"
)
