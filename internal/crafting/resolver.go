// Package crafting resolves ingredient selections against the recipe catalog.
package crafting

import (
	"slices"
	"strings"

	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/inventory"
)

// Catalog provides recipes and item templates.
type Catalog interface {
	Recipes() []domain.Recipe
	Item(name string) (domain.ItemTemplate, bool)
}

// Resolver matches inventory selections against recipes by exact ingredient
// multiset.
type Resolver struct {
	catalog        Catalog
	maxIngredients int
	byKey          map[string]domain.Recipe
}

// NewResolver indexes the catalog recipes. maxIngredients caps the selection
// size.
func NewResolver(c Catalog, maxIngredients int) *Resolver {
	r := &Resolver{
		catalog:        c,
		maxIngredients: maxIngredients,
		byKey:          make(map[string]domain.Recipe, len(c.Recipes())),
	}
	for _, recipe := range c.Recipes() {
		key := multisetKey(recipe.Ingredients)
		if _, dup := r.byKey[key]; !dup {
			r.byKey[key] = recipe
		}
	}
	return r
}

func multisetKey(names []string) string {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	return strings.Join(sorted, "\x00")
}

// Find returns the recipe whose ingredients match the selected slots. The
// selection must hold 1..max distinct indices of valid slots.
func (r *Resolver) Find(inv *inventory.Store, indices []int) (domain.Recipe, bool) {
	if len(indices) == 0 || len(indices) > r.maxIngredients {
		return domain.Recipe{}, false
	}

	names := make([]string, 0, len(indices))
	seen := make(map[int]bool, len(indices))
	for _, i := range indices {
		if seen[i] {
			return domain.Recipe{}, false
		}
		seen[i] = true

		slot, ok := inv.Slot(i)
		if !ok || !slot.Valid {
			return domain.Recipe{}, false
		}
		names = append(names, slot.Name)
	}

	recipe, ok := r.byKey[multisetKey(names)]
	return recipe, ok
}

// Craft consumes one unit from every selected slot and adds the recipe
// result. Nothing changes when no recipe matches or the result does not fit.
func (r *Resolver) Craft(inv *inventory.Store, indices []int) (domain.Recipe, bool) {
	recipe, ok := r.Find(inv, indices)
	if !ok {
		return domain.Recipe{}, false
	}
	result, ok := r.catalog.Item(recipe.Result)
	if !ok || !inv.CanAdd(result, 1) {
		return domain.Recipe{}, false
	}

	for _, i := range indices {
		inv.Consume(i, 1)
	}
	inv.Add(result, 1)
	return recipe, true
}
