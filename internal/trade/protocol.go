package trade

import (
	"fmt"

	"github.com/Holmiboii/ummorpg/internal/domain"
)

// Outcome is the result of an accept.
type Outcome int

const (
	// Rejected means the accept was not honored and nothing changed.
	Rejected Outcome = iota
	// Waiting means the accept was recorded and the other side must accept.
	Waiting
	// Completed means the exchange was executed.
	Completed
	// Aborted means the exchange was attempted and skipped without mutation.
	Aborted
)

// Abort reasons
const (
	ReasonOfferInvalid      = "offer_invalid"
	ReasonInsufficientSpace = "insufficient_space"
)

// ViolationFunc reports an exchange that failed after its pre-checks passed.
type ViolationFunc func(detail string)

// Invite records from as the inviter of to.
func Invite(from, to Party) bool {
	if from.PartyID() == to.PartyID() {
		return false
	}
	to.Offer().RequestedBy = from.PartyID()
	return true
}

// AcceptInvite answers the pending invitation from inviter with the mutual
// back-reference that starts the trade.
func AcceptInvite(self, inviter Party) bool {
	if self.Offer().RequestedBy != inviter.PartyID() || self.PartyID() == inviter.PartyID() {
		return false
	}
	inviter.Offer().RequestedBy = self.PartyID()
	return true
}

// Decline drops the pending invitation.
func Decline(self Party) bool {
	if self.Offer().RequestedBy == "" {
		return false
	}
	self.Offer().RequestedBy = ""
	return true
}

// Started reports whether a and b reference each other.
func Started(a, b Party) bool {
	return a.Offer().RequestedBy == b.PartyID() && b.Offer().RequestedBy == a.PartyID()
}

// OfferGold sets the offered gold while unlocked.
func OfferGold(p Party, amount int64) bool {
	o := p.Offer()
	if o.Locked || amount < 0 || amount > p.Gold() {
		return false
	}
	o.Gold = amount
	return true
}

// OfferItem puts inventory slot invIndex into offer slot offerIndex. The item
// must be tradable and not already offered.
func OfferItem(p Party, invIndex, offerIndex int) bool {
	o := p.Offer()
	if o.Locked || offerIndex < 0 || offerIndex >= len(o.Items) || o.references(invIndex) {
		return false
	}
	t, ok := p.Inventory().Template(invIndex)
	if !ok || !t.Tradable {
		return false
	}
	o.Items[offerIndex] = invIndex
	return true
}

// ClearOfferItem empties offer slot offerIndex while unlocked.
func ClearOfferItem(p Party, offerIndex int) bool {
	o := p.Offer()
	if o.Locked || offerIndex < 0 || offerIndex >= len(o.Items) || o.Items[offerIndex] == NoItem {
		return false
	}
	o.Items[offerIndex] = NoItem
	return true
}

// Lock freezes the offer for the rest of the session.
func Lock(p Party) bool {
	o := p.Offer()
	if o.Locked {
		return false
	}
	o.Locked = true
	return true
}

// Accept records p's acceptance once both offers are locked. The first
// acceptor waits; the second triggers the exchange. After an exchange attempt
// both invitations are cleared, which ends the session.
func Accept(p, other Party, report ViolationFunc) (Outcome, string) {
	mine, theirs := p.Offer(), other.Offer()
	if !Started(p, other) || !mine.Locked || !theirs.Locked || mine.Accepted {
		return Rejected, ""
	}
	mine.Accepted = true
	if !theirs.Accepted {
		return Waiting, ""
	}

	outcome, reason := Execute(p, other, report)
	Cleanup(p, other)
	Cleanup(other, p)
	return outcome, reason
}

// Cleanup resets p's offer, drops its invitation, and drops other's
// invitation when it points at p. other may be nil.
func Cleanup(p, other Party) {
	p.Offer().Clear()
	if other != nil && other.Offer().RequestedBy == p.PartyID() {
		other.Offer().RequestedBy = ""
	}
}

// validOffer re-checks an offer against the current state.
func validOffer(p Party) bool {
	o := p.Offer()
	if o.Gold < 0 || o.Gold > p.Gold() {
		return false
	}
	seen := make(map[int]bool, len(o.Items))
	for _, idx := range o.Items {
		if idx == NoItem {
			continue
		}
		if seen[idx] {
			return false
		}
		seen[idx] = true
		t, ok := p.Inventory().Template(idx)
		if !ok || !t.Tradable {
			return false
		}
	}
	return true
}

// hasRoom checks the receiver's net deficit. Outgoing slots are emptied
// before incoming items are placed, so only incoming beyond outgoing needs
// existing free slots. Reordering Execute to place before extracting breaks
// this check.
func hasRoom(receiver, sender Party) bool {
	incoming := sender.Offer().ItemCount()
	outgoing := receiver.Offer().ItemCount()
	return max(incoming-outgoing, 0) <= receiver.Inventory().FreeSlots()
}

// Execute performs the exchange: re-validate both offers, check both net
// deficits, extract both offers into holding buffers, place each buffer into
// the other side's empty slots and move gold both ways. A failed check aborts
// without mutation.
func Execute(a, b Party, report ViolationFunc) (Outcome, string) {
	if !validOffer(a) || !validOffer(b) {
		return Aborted, ReasonOfferInvalid
	}
	if !hasRoom(a, b) || !hasRoom(b, a) {
		return Aborted, ReasonInsufficientSpace
	}

	holdA := extract(a)
	holdB := extract(b)
	place(b, a, holdA, report)
	place(a, b, holdB, report)

	goldA, goldB := a.Offer().Gold, b.Offer().Gold
	a.SetGold(a.Gold() - goldA + goldB)
	b.SetGold(b.Gold() - goldB + goldA)
	return Completed, ""
}

func extract(p Party) []domain.ItemSlot {
	var held []domain.ItemSlot
	for _, idx := range p.Offer().Items {
		if idx == NoItem {
			continue
		}
		if slot, ok := p.Inventory().Extract(idx); ok {
			held = append(held, slot)
		}
	}
	return held
}

// place distributes held items into receiver. A residual is an invariant
// violation; it goes back to the sender when possible so nothing vanishes.
func place(receiver, sender Party, held []domain.ItemSlot, report ViolationFunc) {
	for _, slot := range held {
		if receiver.Inventory().PlaceInEmpty(slot) {
			continue
		}
		returned := sender.Inventory().PlaceInEmpty(slot)
		if report != nil {
			report(fmt.Sprintf(ErrFmtResidual, slot.Amount, slot.Name, receiver.PartyID(), returned))
		}
	}
}
