// Package quest tracks per-entity quest progress against quest templates.
package quest

import (
	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/inventory"
)

// Catalog resolves quest and item templates.
type Catalog interface {
	Quest(name string) (domain.QuestTemplate, bool)
	Item(name string) (domain.ItemTemplate, bool)
}

// Reward is what a completed quest grants beyond its reward item.
type Reward struct {
	Gold       int64
	Experience int64
}

// Tracker holds one entity's quest instances. Quests are appended on accept
// and only ever marked completed.
type Tracker struct {
	quests  []domain.Quest
	catalog Catalog
	limit   int
}

// NewTracker creates an empty tracker allowing limit active quests.
func NewTracker(c Catalog, limit int) *Tracker {
	return &Tracker{catalog: c, limit: limit}
}

// Restore replaces the quest list with persisted instances.
func (t *Tracker) Restore(quests []domain.Quest) {
	t.quests = append([]domain.Quest(nil), quests...)
}

// Quests returns a copy of all quest instances.
func (t *Tracker) Quests() []domain.Quest {
	return append([]domain.Quest(nil), t.quests...)
}

// ActiveCount counts quests not yet completed.
func (t *Tracker) ActiveCount() int {
	n := 0
	for _, q := range t.quests {
		if !q.Completed {
			n++
		}
	}
	return n
}

func (t *Tracker) find(name string) int {
	for i, q := range t.quests {
		if q.Name == name {
			return i
		}
	}
	return -1
}

// HasCompleted reports whether the named quest was completed.
func (t *Tracker) HasCompleted(name string) bool {
	i := t.find(name)
	return i >= 0 && t.quests[i].Completed
}

// IncreaseKillCounter advances every active quest hunting targetName,
// clamped at its kill amount.
func (t *Tracker) IncreaseKillCounter(targetName string) {
	for i, q := range t.quests {
		if q.Completed {
			continue
		}
		tmpl, ok := t.catalog.Quest(q.Name)
		if !ok || tmpl.KillTarget != targetName || tmpl.KillAmount <= 0 {
			continue
		}
		t.quests[i].Killed = min(q.Killed+1, tmpl.KillAmount)
	}
}

// Fulfilled reports whether the named active quest meets its kill and gather
// requirements. Gather progress is the live inventory count.
func (t *Tracker) Fulfilled(name string, inv *inventory.Store) bool {
	i := t.find(name)
	if i < 0 || t.quests[i].Completed {
		return false
	}
	tmpl, ok := t.catalog.Quest(name)
	if !ok {
		return false
	}
	return t.fulfilled(t.quests[i], tmpl, inv)
}

func (t *Tracker) fulfilled(q domain.Quest, tmpl domain.QuestTemplate, inv *inventory.Store) bool {
	if q.Killed < tmpl.KillAmount {
		return false
	}
	return tmpl.GatherItem == "" || tmpl.GatherAmount <= 0 || inv.Count(tmpl.GatherItem) >= tmpl.GatherAmount
}

// CanStart reports whether the named quest may be accepted: under the active
// quest limit, level high enough, not already held and predecessor completed.
func (t *Tracker) CanStart(name string, level int) bool {
	tmpl, ok := t.catalog.Quest(name)
	if !ok {
		return false
	}
	if t.ActiveCount() >= t.limit || level < tmpl.RequiredLevel || t.find(name) >= 0 {
		return false
	}
	return tmpl.Predecessor == "" || t.HasCompleted(tmpl.Predecessor)
}

// Accept appends a new instance of the named quest when CanStart holds.
func (t *Tracker) Accept(name string, level int) bool {
	if !t.CanStart(name, level) {
		return false
	}
	t.quests = append(t.quests, domain.Quest{Name: name})
	return true
}

// Complete finishes the named quest: it must be fulfilled and, when a reward
// item exists, the inventory must have room for it. Gathered items are
// consumed, the reward item added and the quest marked completed. The caller
// grants the returned gold and experience.
func (t *Tracker) Complete(name string, inv *inventory.Store) (Reward, bool) {
	i := t.find(name)
	if i < 0 || t.quests[i].Completed {
		return Reward{}, false
	}
	tmpl, ok := t.catalog.Quest(name)
	if !ok || !t.fulfilled(t.quests[i], tmpl, inv) {
		return Reward{}, false
	}

	var rewardItem domain.ItemTemplate
	if tmpl.RewardItem != "" {
		rewardItem, ok = t.catalog.Item(tmpl.RewardItem)
		if !ok || !inv.CanAdd(rewardItem, 1) {
			return Reward{}, false
		}
	}

	if tmpl.GatherItem != "" && tmpl.GatherAmount > 0 {
		if !inv.RemoveByName(tmpl.GatherItem, tmpl.GatherAmount) {
			return Reward{}, false
		}
	}
	if tmpl.RewardItem != "" {
		inv.Add(rewardItem, 1)
	}
	t.quests[i].Completed = true

	return Reward{Gold: tmpl.RewardGold, Experience: tmpl.RewardExperience}, true
}
