// Package trade implements the two-party trade protocol: mutual invitation,
// offer composition, irreversible lock, two-step accept and atomic exchange.
package trade

import (
	"github.com/Holmiboii/ummorpg/internal/inventory"
)

// NoItem marks an unused offer slot.
const NoItem = -1

// Party is one side of a trade.
type Party interface {
	PartyID() string
	Inventory() *inventory.Store
	Gold() int64
	SetGold(gold int64)
	Offer() *Offer
}

// Offer is one party's side of a trade. RequestedBy names the party that
// invited the owner. Items holds inventory indices or NoItem.
type Offer struct {
	RequestedBy string `json:"requested_by,omitempty"`
	Gold        int64  `json:"gold"`
	Items       []int  `json:"items"`
	Locked      bool   `json:"locked"`
	Accepted    bool   `json:"accepted"`
}

// NewOffer creates an empty offer with slots item slots.
func NewOffer(slots int) Offer {
	o := Offer{Items: make([]int, slots)}
	o.Reset()
	return o
}

// Reset empties the offer contents and unlocks it. The invitation stays.
func (o *Offer) Reset() {
	o.Gold = 0
	for i := range o.Items {
		o.Items[i] = NoItem
	}
	o.Locked = false
	o.Accepted = false
}

// Clear resets the offer and drops the invitation.
func (o *Offer) Clear() {
	o.Reset()
	o.RequestedBy = ""
}

// ItemCount is the number of used offer slots.
func (o *Offer) ItemCount() int {
	n := 0
	for _, idx := range o.Items {
		if idx != NoItem {
			n++
		}
	}
	return n
}

func (o *Offer) references(invIndex int) bool {
	for _, idx := range o.Items {
		if idx == invIndex {
			return true
		}
	}
	return false
}
