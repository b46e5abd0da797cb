package world

import (
	"sort"
	"time"

	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/entity"
	"github.com/Holmiboii/ummorpg/internal/event"
	"github.com/Holmiboii/ummorpg/internal/trade"
)

// Command is one transport command for a player. apply re-validates it
// against the current state and reports whether it had an effect; latch
// commands report whether the latch was set.
type Command interface {
	Kind() string
	apply(w *World, e *entity.Entity, now time.Time) bool
}

var factories = map[string]func() Command{
	KindNavigate:            func() Command { return &Navigate{} },
	KindCancelAction:        func() Command { return &CancelAction{} },
	KindUseSkill:            func() Command { return &UseSkill{} },
	KindLearnSkill:          func() Command { return &LearnSkill{} },
	KindUpgradeSkill:        func() Command { return &UpgradeSkill{} },
	KindSetTarget:           func() Command { return &SetTarget{} },
	KindRespawn:             func() Command { return &Respawn{} },
	KindInventorySwap:       func() Command { return &InventorySwap{} },
	KindInventorySplit:      func() Command { return &InventorySplit{} },
	KindInventoryMerge:      func() Command { return &InventoryMerge{} },
	KindInventoryUse:        func() Command { return &InventoryUse{} },
	KindEquipSwap:           func() Command { return &EquipSwap{} },
	KindTradeRequest:        func() Command { return &TradeRequest{} },
	KindTradeAcceptInvite:   func() Command { return &TradeAcceptInvite{} },
	KindTradeDecline:        func() Command { return &TradeDecline{} },
	KindTradeOfferGold:      func() Command { return &TradeOfferGold{} },
	KindTradeOfferItem:      func() Command { return &TradeOfferItem{} },
	KindTradeClearOfferItem: func() Command { return &TradeClearOfferItem{} },
	KindTradeLock:           func() Command { return &TradeLock{} },
	KindTradeAccept:         func() Command { return &TradeAccept{} },
	KindTradeCancel:         func() Command { return &TradeCancel{} },
	KindCraft:               func() Command { return &Craft{} },
	KindQuestAccept:         func() Command { return &QuestAccept{} },
	KindQuestComplete:       func() Command { return &QuestComplete{} },
	KindNpcBuy:              func() Command { return &NpcBuy{} },
	KindNpcSell:             func() Command { return &NpcSell{} },
}

// NewCommand returns an empty command of the given kind to decode into.
func NewCommand(kind string) (Command, bool) {
	f, ok := factories[kind]
	if !ok {
		return nil, false
	}
	return f(), true
}

// Kinds lists every command kind in lexical order.
func Kinds() []string {
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func (w *World) reach() float64 {
	return w.catalog.Player().InteractionRange
}

// targetNpc resolves the current target when it is an NPC.
func (w *World) targetNpc(e *entity.Entity) *entity.Entity {
	npc, ok := w.entities.Lookup(e.TargetID)
	if !ok || npc.Kind != domain.KindNpc {
		return nil
	}
	return npc
}

// Navigate latches a move to a point.
type Navigate struct {
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	StoppingDistance float64 `json:"stopping_distance" validate:"gte=0"`
}

func (Navigate) Kind() string { return KindNavigate }

func (c Navigate) apply(_ *World, e *entity.Entity, _ time.Time) bool {
	e.Navigate(entity.Destination{Point: domain.Vec2{X: c.X, Y: c.Y}, StoppingDistance: c.StoppingDistance})
	return true
}

// CancelAction latches a cancel.
type CancelAction struct{}

func (CancelAction) Kind() string { return KindCancelAction }

func (CancelAction) apply(_ *World, e *entity.Entity, _ time.Time) bool {
	e.CancelAction()
	return true
}

// UseSkill latches a skill request.
type UseSkill struct {
	Index int `json:"index" validate:"gte=0"`
}

func (UseSkill) Kind() string { return KindUseSkill }

func (c UseSkill) apply(_ *World, e *entity.Entity, _ time.Time) bool {
	return e.RequestSkill(c.Index)
}

// LearnSkill learns a skill from the catalog list.
type LearnSkill struct {
	Index int `json:"index" validate:"gte=0"`
}

func (LearnSkill) Kind() string { return KindLearnSkill }

func (c LearnSkill) apply(_ *World, e *entity.Entity, _ time.Time) bool {
	return e.LearnSkill(c.Index)
}

// UpgradeSkill raises a learned skill by one level.
type UpgradeSkill struct {
	Index int `json:"index" validate:"gte=0"`
}

func (UpgradeSkill) Kind() string { return KindUpgradeSkill }

func (c UpgradeSkill) apply(_ *World, e *entity.Entity, _ time.Time) bool {
	return e.UpgradeSkill(c.Index)
}

// SetTarget selects an entity.
type SetTarget struct {
	TargetID string `json:"target_id" validate:"required,max=64"`
}

func (SetTarget) Kind() string { return KindSetTarget }

func (c SetTarget) apply(_ *World, e *entity.Entity, _ time.Time) bool {
	return e.SetTarget(c.TargetID)
}

// Respawn latches a respawn request.
type Respawn struct{}

func (Respawn) Kind() string { return KindRespawn }

func (Respawn) apply(_ *World, e *entity.Entity, _ time.Time) bool {
	if e.State != entity.StateDead {
		return false
	}
	e.RequestRespawn()
	return true
}

// InventorySwap swaps two inventory slots.
type InventorySwap struct {
	From int `json:"from" validate:"gte=0"`
	To   int `json:"to" validate:"gte=0"`
}

func (InventorySwap) Kind() string { return KindInventorySwap }

func (c InventorySwap) apply(_ *World, e *entity.Entity, _ time.Time) bool {
	return e.SwapInventory(c.From, c.To)
}

// InventorySplit halves a stack into an empty slot.
type InventorySplit struct {
	From int `json:"from" validate:"gte=0"`
	To   int `json:"to" validate:"gte=0"`
}

func (InventorySplit) Kind() string { return KindInventorySplit }

func (c InventorySplit) apply(_ *World, e *entity.Entity, _ time.Time) bool {
	return e.SplitInventory(c.From, c.To)
}

// InventoryMerge stacks one slot onto another.
type InventoryMerge struct {
	From int `json:"from" validate:"gte=0"`
	To   int `json:"to" validate:"gte=0"`
}

func (InventoryMerge) Kind() string { return KindInventoryMerge }

func (c InventoryMerge) apply(_ *World, e *entity.Entity, _ time.Time) bool {
	return e.MergeInventory(c.From, c.To)
}

// InventoryUse drinks or equips the item in a slot.
type InventoryUse struct {
	Index int `json:"index" validate:"gte=0"`
}

func (InventoryUse) Kind() string { return KindInventoryUse }

func (c InventoryUse) apply(_ *World, e *entity.Entity, now time.Time) bool {
	return e.UseItem(c.Index, now)
}

// EquipSwap exchanges an inventory slot with an equipment slot.
type EquipSwap struct {
	InventoryIndex int `json:"inventory_index" validate:"gte=0"`
	EquipmentIndex int `json:"equipment_index" validate:"gte=0"`
}

func (EquipSwap) Kind() string { return KindEquipSwap }

func (c EquipSwap) apply(_ *World, e *entity.Entity, now time.Time) bool {
	return e.SwapEquipment(c.InventoryIndex, c.EquipmentIndex, now)
}

// TradeRequest invites the current target to trade.
type TradeRequest struct{}

func (TradeRequest) Kind() string { return KindTradeRequest }

func (TradeRequest) apply(w *World, e *entity.Entity, _ time.Time) bool {
	other, ok := w.entities.Lookup(e.TargetID)
	return ok && e.CanTradeWith(other, w.reach()) && trade.Invite(e, other)
}

// TradeAcceptInvite answers the pending invitation.
type TradeAcceptInvite struct{}

func (TradeAcceptInvite) Kind() string { return KindTradeAcceptInvite }

func (TradeAcceptInvite) apply(w *World, e *entity.Entity, _ time.Time) bool {
	inviter, ok := w.entities.Lookup(e.Offer().RequestedBy)
	return ok && e.CanTradeWith(inviter, w.reach()) && trade.AcceptInvite(e, inviter)
}

// TradeDecline drops the pending invitation. Inside a session the partner
// observes it as the end of the trade.
type TradeDecline struct{}

func (TradeDecline) Kind() string { return KindTradeDecline }

func (TradeDecline) apply(_ *World, e *entity.Entity, _ time.Time) bool {
	return trade.Decline(e)
}

// TradeOfferGold sets the offered gold.
type TradeOfferGold struct {
	Amount int64 `json:"amount" validate:"gte=0"`
}

func (TradeOfferGold) Kind() string { return KindTradeOfferGold }

func (c TradeOfferGold) apply(_ *World, e *entity.Entity, _ time.Time) bool {
	return e.State == entity.StateTrading && trade.OfferGold(e, c.Amount)
}

// TradeOfferItem puts an inventory slot into an offer slot.
type TradeOfferItem struct {
	InventoryIndex int `json:"inventory_index" validate:"gte=0"`
	OfferIndex     int `json:"offer_index" validate:"gte=0"`
}

func (TradeOfferItem) Kind() string { return KindTradeOfferItem }

func (c TradeOfferItem) apply(_ *World, e *entity.Entity, _ time.Time) bool {
	return e.State == entity.StateTrading && trade.OfferItem(e, c.InventoryIndex, c.OfferIndex)
}

// TradeClearOfferItem empties an offer slot.
type TradeClearOfferItem struct {
	OfferIndex int `json:"offer_index" validate:"gte=0"`
}

func (TradeClearOfferItem) Kind() string { return KindTradeClearOfferItem }

func (c TradeClearOfferItem) apply(_ *World, e *entity.Entity, _ time.Time) bool {
	return e.State == entity.StateTrading && trade.ClearOfferItem(e, c.OfferIndex)
}

// TradeLock freezes the own offer.
type TradeLock struct{}

func (TradeLock) Kind() string { return KindTradeLock }

func (TradeLock) apply(_ *World, e *entity.Entity, _ time.Time) bool {
	return e.State == entity.StateTrading && trade.Lock(e)
}

// TradeAccept accepts the locked offers. The second acceptor executes the
// exchange for both parties inside the current step.
type TradeAccept struct{}

func (TradeAccept) Kind() string { return KindTradeAccept }

func (TradeAccept) apply(w *World, e *entity.Entity, _ time.Time) bool {
	other, ok := w.entities.Lookup(e.TargetID)
	if !ok || !e.TradingWith(other) || !other.TradingWith(e) {
		return false
	}
	outcome, reason := trade.Accept(e, other, w.reporter(e.ID, ComponentTrade))
	switch outcome {
	case trade.Completed:
		w.emit(event.TradeCompleted, e.ID, domain.TradePayload{EntityID: e.ID, OtherID: other.ID})
		w.emit(event.TradeCompleted, other.ID, domain.TradePayload{EntityID: other.ID, OtherID: e.ID})
	case trade.Aborted:
		w.emit(event.TradeAborted, e.ID, domain.TradePayload{EntityID: e.ID, OtherID: other.ID, Reason: reason})
		w.emit(event.TradeAborted, other.ID, domain.TradePayload{EntityID: other.ID, OtherID: e.ID, Reason: reason})
	}
	return outcome != trade.Rejected
}

// TradeCancel leaves the session on the next step.
type TradeCancel struct{}

func (TradeCancel) Kind() string { return KindTradeCancel }

func (TradeCancel) apply(_ *World, e *entity.Entity, _ time.Time) bool {
	if e.State != entity.StateTrading {
		return false
	}
	e.CancelAction()
	return true
}

// Craft combines the selected inventory slots.
type Craft struct {
	Indices []int `json:"indices" validate:"required,min=1,max=16,dive,gte=0"`
}

func (Craft) Kind() string { return KindCraft }

func (c Craft) apply(w *World, e *entity.Entity, _ time.Time) bool {
	recipe, ok := e.Craft(w.crafter, c.Indices)
	if !ok {
		return false
	}
	w.emit(event.ItemCrafted, e.ID, domain.ItemCraftedPayload{EntityID: e.ID, Result: recipe.Result, Ingredients: recipe.Ingredients})
	return true
}

// QuestAccept accepts a quest offered by the targeted NPC.
type QuestAccept struct {
	Index int `json:"index" validate:"gte=0"`
}

func (QuestAccept) Kind() string { return KindQuestAccept }

func (c QuestAccept) apply(w *World, e *entity.Entity, _ time.Time) bool {
	return e.AcceptNpcQuest(w.targetNpc(e), c.Index, w.reach())
}

// QuestComplete turns in a quest at the targeted NPC.
type QuestComplete struct {
	Index int `json:"index" validate:"gte=0"`
}

func (QuestComplete) Kind() string { return KindQuestComplete }

func (c QuestComplete) apply(w *World, e *entity.Entity, _ time.Time) bool {
	res, ok := e.CompleteNpcQuest(w.targetNpc(e), c.Index, w.reach())
	if !ok {
		return false
	}
	w.emit(event.QuestCompleted, e.ID, domain.QuestCompletedPayload{EntityID: e.ID, Quest: res.Quest})
	if res.NewLevel > res.OldLevel {
		w.emit(event.LevelUp, e.ID, domain.LevelUpPayload{EntityID: e.ID, OldLevel: res.OldLevel, NewLevel: res.NewLevel})
	}
	return true
}

// NpcBuy buys from the targeted NPC's sale list.
type NpcBuy struct {
	Index  int `json:"index" validate:"gte=0"`
	Amount int `json:"amount" validate:"gte=1"`
}

func (NpcBuy) Kind() string { return KindNpcBuy }

func (c NpcBuy) apply(w *World, e *entity.Entity, _ time.Time) bool {
	return e.BuyFromNpc(w.targetNpc(e), c.Index, c.Amount, w.reach())
}

// NpcSell sells an inventory slot to the targeted NPC.
type NpcSell struct {
	Index  int `json:"index" validate:"gte=0"`
	Amount int `json:"amount" validate:"gte=1"`
}

func (NpcSell) Kind() string { return KindNpcSell }

func (c NpcSell) apply(w *World, e *entity.Entity, _ time.Time) bool {
	return e.SellToNpc(w.targetNpc(e), c.Index, c.Amount, w.reach())
}
