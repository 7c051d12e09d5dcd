package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uillasnr/mobilefinance/internal/model"
)

func TestRoundTrip(t *testing.T) {
	cats := []model.Category{
		{ID: "food", Title: "Alimentação", Color: "#F87171", Icon: "restaurant"},
		{ID: "misc", Title: "Diversos, outros"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCategories(&buf, cats))
	assert.True(t, strings.HasPrefix(buf.String(), Header+"\n"))

	got, err := ReadCategories(&buf)
	require.NoError(t, err)
	assert.Equal(t, cats, got)
}

func TestReadCategories_Empty(t *testing.T) {
	got, err := ReadCategories(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestReadCategories_MissingID(t *testing.T) {
	_, err := ReadCategories(strings.NewReader(Header + "\n,Food,#fff,cart\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestReadCategories_WrongFieldCount(t *testing.T) {
	_, err := ReadCategories(strings.NewReader(Header + "\nfood,Food\n"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cats := Default()
	require.NotEmpty(t, cats)

	seen := map[string]bool{}
	for _, c := range cats {
		assert.True(t, c.Valid(), "category %+v", c)
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
		assert.NotEmpty(t, c.Color)
	}
}

func TestGetExists(t *testing.T) {
	svc := NewService(Default())
	assert.Len(t, svc.All(), len(Default()))

	c, ok := svc.Get("food")
	require.True(t, ok)
	assert.Equal(t, "Alimentação", c.Title)

	_, ok = svc.Get("nope")
	assert.False(t, ok)
	assert.True(t, svc.Exists("salary"))
	assert.False(t, svc.Exists(""))
}

func TestResolve(t *testing.T) {
	svc := NewService(Default())

	got := svc.Resolve(model.Category{ID: "food"})
	assert.Equal(t, model.Category{ID: "food", Title: "Alimentação", Color: "#F87171", Icon: "restaurant"}, got)

	// Fields already set win.
	got = svc.Resolve(model.Category{ID: "food", Title: "Comida", Color: "#000000"})
	assert.Equal(t, "Comida", got.Title)
	assert.Equal(t, "#000000", got.Color)
	assert.Equal(t, "restaurant", got.Icon)

	// Unknown IDs and legacy strings pass through.
	unknown := model.Category{ID: "x", Title: "X"}
	assert.Equal(t, unknown, svc.Resolve(unknown))
	legacy := model.Category{Title: "Mercado"}
	assert.Equal(t, legacy, svc.Resolve(legacy))
}

func TestResolveAll_DoesNotMutate(t *testing.T) {
	svc := NewService(Default())
	txns := []model.Transaction{{ID: "1", Category: model.Category{ID: "pets"}}}

	got := svc.ResolveAll(txns)
	assert.Equal(t, "Pets", got[0].Category.Title)
	assert.Empty(t, txns[0].Category.Title)
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewService(Default()).Save(dir))

	_, err := os.Stat(filepath.Join(dir, FileName))
	require.NoError(t, err)

	svc, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), svc.All())
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
