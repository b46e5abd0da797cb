package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/validation"
)

func validFile() File {
	return File{
		Version: "1",
		Player:  domain.PlayerTemplate{InventorySize: 4, EquipmentSlots: []string{"Weapon"}, TradeOfferSlots: 2},
		Levels:  []domain.LevelStats{{HpMax: 10, ExpMax: 10}},
		Items: []domain.ItemTemplate{
			{Name: "wood", Kind: domain.ItemKindItem, MaxStack: 10},
			{Name: "short_sword", Category: "WeaponSword", Kind: domain.ItemKindEquipment, MaxStack: 1},
		},
		Skills: []domain.SkillTemplate{
			{Name: "strike", Category: domain.SkillCategoryAttack, Levels: []domain.SkillLevel{{RequiredLevel: 1}}},
		},
		Quests:  []domain.QuestTemplate{{Name: "first"}, {Name: "second", Predecessor: "first", GatherItem: "wood", GatherAmount: 2}},
		Recipes: []domain.Recipe{{Ingredients: []string{"wood", "wood"}, Result: "short_sword"}},
		Npcs:    []domain.NpcTemplate{{Name: "smith", SaleItems: []string{"wood"}, Quests: []string{"first"}}},
		Spawns:  []domain.Spawn{{Kind: domain.KindNpc, Template: "smith"}},
	}
}

func TestNew(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		c, err := New(validFile())
		require.NoError(t, err)

		it, ok := c.Item("wood")
		require.True(t, ok)
		assert.Equal(t, 10, it.MaxStack)
		assert.Equal(t, "Wood", it.DisplayName)

		sword, _ := c.Item("short_sword")
		assert.Equal(t, "Short Sword", sword.DisplayName)

		_, ok = c.Item("missing")
		assert.False(t, ok)

		sk, ok := c.Skill("strike")
		require.True(t, ok)
		assert.Equal(t, 1, sk.MaxLevel())
		assert.Len(t, c.Skills(), 1)
		assert.Len(t, c.Recipes(), 1)
		assert.Len(t, c.Spawns(), 1)
	})

	tests := []struct {
		name    string
		mutate  func(f *File)
		wantErr error
		msg     string
	}{
		{name: "no levels", mutate: func(f *File) { f.Levels = nil }, wantErr: ErrInvalidCatalog, msg: ErrMsgNoLevels},
		{name: "duplicate item", mutate: func(f *File) { f.Items = append(f.Items, f.Items[0]) }, wantErr: ErrDuplicateName},
		{name: "zero max stack", mutate: func(f *File) { f.Items[0].MaxStack = 0 }, wantErr: ErrInvalidCatalog, msg: "max_stack"},
		{name: "skill without levels", mutate: func(f *File) { f.Skills[0].Levels = nil }, wantErr: ErrInvalidCatalog, msg: "has no levels"},
		{name: "unknown predecessor", mutate: func(f *File) { f.Quests[1].Predecessor = "nope" }, wantErr: ErrInvalidCatalog, msg: "nope"},
		{name: "unknown recipe ingredient", mutate: func(f *File) { f.Recipes[0].Ingredients[0] = "stone" }, wantErr: ErrInvalidCatalog, msg: "stone"},
		{name: "unknown sale item", mutate: func(f *File) { f.Npcs[0].SaleItems = []string{"gem"} }, wantErr: ErrInvalidCatalog, msg: "gem"},
		{name: "unknown spawn", mutate: func(f *File) { f.Spawns[0].Template = "ghost" }, wantErr: ErrInvalidCatalog, msg: "ghost"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFile()
			tt.mutate(&f)
			_, err := New(f)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestLoader_Load(t *testing.T) {
	loader := NewLoader()
	ctx := context.Background()

	t.Run("shipped catalog", func(t *testing.T) {
		c, err := loader.Load(ctx, filepath.Join("..", "..", "configs", "catalog.json"))
		require.NoError(t, err)
		assert.NotEmpty(t, c.Levels())
		assert.Positive(t, c.Player().InventorySize)
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := loader.Load(ctx, "/nonexistent/catalog.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read catalog file")
	})

	t.Run("schema violation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"version": "1", "levels": []}`), 0o600))

		_, err := loader.Load(ctx, path)
		require.Error(t, err)
		assert.ErrorIs(t, err, validation.ErrSchemaValidation)
	})
}
