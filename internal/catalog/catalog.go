package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Holmiboii/ummorpg/internal/domain"
)

// File is the JSON layout of a catalog file.
type File struct {
	Version  string                   `json:"version"`
	Player   domain.PlayerTemplate    `json:"player"`
	Levels   []domain.LevelStats      `json:"levels"`
	Items    []domain.ItemTemplate    `json:"items"`
	Skills   []domain.SkillTemplate   `json:"skills"`
	Quests   []domain.QuestTemplate   `json:"quests"`
	Recipes  []domain.Recipe          `json:"recipes"`
	Monsters []domain.MonsterTemplate `json:"monsters"`
	Npcs     []domain.NpcTemplate     `json:"npcs"`
	Spawns   []domain.Spawn           `json:"spawns"`
}

// Catalog is the injected, read-only template store. Every lookup reports
// whether the name exists; callers treat a miss as a rejected operation.
type Catalog struct {
	version  string
	player   domain.PlayerTemplate
	levels   []domain.LevelStats
	items    map[string]domain.ItemTemplate
	skills   []domain.SkillTemplate
	quests   map[string]domain.QuestTemplate
	recipes  []domain.Recipe
	monsters map[string]domain.MonsterTemplate
	npcs     map[string]domain.NpcTemplate
	spawns   []domain.Spawn
}

// New builds a catalog from a decoded file after checking cross references.
func New(f File) (*Catalog, error) {
	c := &Catalog{
		version:  f.Version,
		player:   f.Player,
		levels:   f.Levels,
		items:    make(map[string]domain.ItemTemplate, len(f.Items)),
		skills:   f.Skills,
		quests:   make(map[string]domain.QuestTemplate, len(f.Quests)),
		recipes:  f.Recipes,
		monsters: make(map[string]domain.MonsterTemplate, len(f.Monsters)),
		npcs:     make(map[string]domain.NpcTemplate, len(f.Npcs)),
		spawns:   f.Spawns,
	}

	if len(c.levels) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalog, ErrMsgNoLevels)
	}

	title := cases.Title(language.English)
	for i, it := range f.Items {
		if it.Name == "" {
			return nil, fmt.Errorf(ErrFmtEmptyName, ErrInvalidCatalog, "item", i)
		}
		if _, dup := c.items[it.Name]; dup {
			return nil, fmt.Errorf("%w: item '%s'", ErrDuplicateName, it.Name)
		}
		if it.MaxStack < 1 {
			return nil, fmt.Errorf(ErrFmtBadMaxStack, ErrInvalidCatalog, it.Name)
		}
		if it.DisplayName == "" {
			it.DisplayName = title.String(strings.ReplaceAll(it.Name, "_", " "))
		}
		c.items[it.Name] = it
	}

	seenSkills := make(map[string]bool, len(f.Skills))
	for i, sk := range f.Skills {
		if sk.Name == "" {
			return nil, fmt.Errorf(ErrFmtEmptyName, ErrInvalidCatalog, "skill", i)
		}
		if seenSkills[sk.Name] {
			return nil, fmt.Errorf("%w: skill '%s'", ErrDuplicateName, sk.Name)
		}
		if len(sk.Levels) == 0 {
			return nil, fmt.Errorf(ErrFmtSkillNoLevels, ErrInvalidCatalog, sk.Name)
		}
		seenSkills[sk.Name] = true
	}

	for i, q := range f.Quests {
		if q.Name == "" {
			return nil, fmt.Errorf(ErrFmtEmptyName, ErrInvalidCatalog, "quest", i)
		}
		if _, dup := c.quests[q.Name]; dup {
			return nil, fmt.Errorf("%w: quest '%s'", ErrDuplicateName, q.Name)
		}
		c.quests[q.Name] = q
	}
	for _, m := range f.Monsters {
		c.monsters[m.Name] = m
	}
	for _, n := range f.Npcs {
		c.npcs[n.Name] = n
	}

	if err := c.checkReferences(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) checkReferences() error {
	for _, q := range c.quests {
		if q.Predecessor != "" {
			if _, ok := c.quests[q.Predecessor]; !ok {
				return fmt.Errorf(ErrFmtUnknownRef, ErrInvalidCatalog, "quest", q.Name, q.Predecessor)
			}
		}
		for _, ref := range []string{q.RewardItem, q.GatherItem} {
			if ref == "" {
				continue
			}
			if _, ok := c.items[ref]; !ok {
				return fmt.Errorf(ErrFmtUnknownRef, ErrInvalidCatalog, "quest", q.Name, ref)
			}
		}
	}
	for i, r := range c.recipes {
		if len(r.Ingredients) == 0 {
			return fmt.Errorf(ErrFmtRecipeEmpty, ErrInvalidCatalog, i)
		}
		for _, ref := range append([]string{r.Result}, r.Ingredients...) {
			if _, ok := c.items[ref]; !ok {
				return fmt.Errorf(ErrFmtUnknownRef, ErrInvalidCatalog, "recipe", r.Result, ref)
			}
		}
	}
	for _, n := range c.npcs {
		for _, ref := range n.SaleItems {
			if _, ok := c.items[ref]; !ok {
				return fmt.Errorf(ErrFmtUnknownRef, ErrInvalidCatalog, "npc", n.Name, ref)
			}
		}
		for _, ref := range n.Quests {
			if _, ok := c.quests[ref]; !ok {
				return fmt.Errorf(ErrFmtUnknownRef, ErrInvalidCatalog, "npc", n.Name, ref)
			}
		}
	}
	for _, s := range c.spawns {
		var ok bool
		switch s.Kind {
		case domain.KindMonster:
			_, ok = c.monsters[s.Template]
		case domain.KindNpc:
			_, ok = c.npcs[s.Template]
		}
		if !ok {
			return fmt.Errorf(ErrFmtUnknownRef, ErrInvalidCatalog, "spawn", string(s.Kind), s.Template)
		}
	}
	return nil
}

// Version is the catalog file version string.
func (c *Catalog) Version() string { return c.version }

// Player returns the shared player defaults.
func (c *Catalog) Player() domain.PlayerTemplate { return c.player }

// Levels returns the player level table; index 0 is level 1.
func (c *Catalog) Levels() []domain.LevelStats { return c.levels }

// Item looks up an item template.
func (c *Catalog) Item(name string) (domain.ItemTemplate, bool) {
	t, ok := c.items[name]
	return t, ok
}

// Skills returns the skill templates in catalog order. A player's skill list
// mirrors this order, so skill indices are catalog indices.
func (c *Catalog) Skills() []domain.SkillTemplate { return c.skills }

// Skill looks up a skill template by name.
func (c *Catalog) Skill(name string) (domain.SkillTemplate, bool) {
	for _, s := range c.skills {
		if s.Name == name {
			return s, true
		}
	}
	return domain.SkillTemplate{}, false
}

// Quest looks up a quest template.
func (c *Catalog) Quest(name string) (domain.QuestTemplate, bool) {
	q, ok := c.quests[name]
	return q, ok
}

// Recipes returns all recipes.
func (c *Catalog) Recipes() []domain.Recipe { return c.recipes }

// Monster looks up a monster template.
func (c *Catalog) Monster(name string) (domain.MonsterTemplate, bool) {
	m, ok := c.monsters[name]
	return m, ok
}

// Npc looks up an NPC template.
func (c *Catalog) Npc(name string) (domain.NpcTemplate, bool) {
	n, ok := c.npcs[name]
	return n, ok
}

// Spawns returns the startup population.
func (c *Catalog) Spawns() []domain.Spawn { return c.spawns }
