package cards_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/proxygen/internal/cards"
	"github.com/ramonehamilton/proxygen/internal/cards/cardstest"
)

func TestLoad_FixtureDataset(t *testing.T) {
	store := cardstest.Store(t)

	// The plane is filtered out, everything else is indexed.
	assert.Equal(t, 21, store.Len())
	assert.Equal(t, 1, store.Dropped())
	assert.Empty(t, store.Collisions())

	_, ok := store.Get("Academy at Tolaria West")
	assert.False(t, ok, "unsupported layouts are dropped by default")
}

func TestLoad_WithUnsupportedLayouts(t *testing.T) {
	store := cardstest.Store(t, cards.WithUnsupportedLayouts())

	assert.Equal(t, 22, store.Len())
	assert.Equal(t, 0, store.Dropped())

	rec, ok := store.Get("academy at tolaria west")
	require.True(t, ok)
	assert.Equal(t, cards.LayoutUnsupported, rec.Kind())
	assert.Equal(t, "plane", rec.Layout)
}

func TestStore_GetSanitizesInput(t *testing.T) {
	store := cardstest.Store(t)

	tests := []struct {
		lookup string
		want   string
	}{
		{lookup: "Snapcaster Mage", want: "Snapcaster Mage"},
		{lookup: "  snapcaster   MAGE ", want: "Snapcaster Mage"},
		{lookup: "Lim-Dul's Vault", want: "Lim-Dûl's Vault"},
		{lookup: "Lim-Dûl's Vault", want: "Lim-Dûl's Vault"},
		{lookup: "aether vial", want: "Æther Vial"},
	}

	for _, tt := range tests {
		t.Run(tt.lookup, func(t *testing.T) {
			rec, ok := store.Get(tt.lookup)
			require.True(t, ok)
			assert.Equal(t, tt.want, rec.Name)
		})
	}

	_, ok := store.Get("Not A Real Card")
	assert.False(t, ok)
}

func TestLoad_DecidesLayoutOnce(t *testing.T) {
	store := cardstest.Store(t)

	tests := map[string]cards.Layout{
		"Island":             cards.LayoutNormal,
		"Student of Warfare": cards.LayoutLeveler,
		"Fire":               cards.LayoutSplit,
		"Bushi Tenderfoot":   cards.LayoutFlip,
		"Delver of Secrets":  cards.LayoutDoubleFaced,
		"Graf Rats":          cards.LayoutMeld,
	}
	for name, want := range tests {
		rec, ok := store.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, want, rec.Kind(), name)
	}
}

func TestLoad_LoyaltyNumberOrString(t *testing.T) {
	store := cardstest.Store(t)

	jace, ok := store.Get("Jace, the Mind Sculptor")
	require.True(t, ok)
	require.NotNil(t, jace.Loyalty)
	assert.Equal(t, cards.Loyalty("3"), *jace.Loyalty)

	nissa, ok := store.Get("Nissa, Who Shakes the World")
	require.True(t, ok)
	require.NotNil(t, nissa.Loyalty)
	assert.Equal(t, cards.Loyalty("5"), *nissa.Loyalty)
}

func TestLoad_ArrayDataset(t *testing.T) {
	data := `[
		{"layout": "normal", "name": "Island", "types": ["Land"]},
		{"layout": "normal", "name": "Mountain", "types": ["Land"]}
	]`

	store, err := cards.Load([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, []string{"island", "mountain"}, store.Keys())
}

func TestLoad_ObjectKeySuppliesMissingName(t *testing.T) {
	store, err := cards.Load([]byte(`{"Island": {"layout": "normal", "types": ["Land"]}}`))
	require.NoError(t, err)

	rec, ok := store.Get("island")
	require.True(t, ok)
	assert.Equal(t, "Island", rec.Name)
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "not json", data: "Island"},
		{name: "scalar", data: `"Island"`},
		{name: "truncated", data: `{"Island": {"layout": "normal"`},
		{name: "bad record", data: `{"Island": {"layout": 7}}`},
		{name: "bad loyalty", data: `{"Jace": {"layout": "normal", "loyalty": true}}`},
		{name: "trailing data", data: `{} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cards.Load([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, cards.ErrDatasetMalformed), "got %v", err)
		})
	}
}

func TestLoad_CollisionLaterWins(t *testing.T) {
	data := `{
		"Lim-Dûl's Vault": {"layout": "normal", "name": "Lim-Dûl's Vault", "text": "first"},
		"Island": {"layout": "normal", "name": "Island"},
		"Lim-Dul's Vault": {"layout": "normal", "name": "Lim-Dul's Vault", "text": "second"}
	}`

	store, err := cards.Load([]byte(data))
	require.NoError(t, err)

	rec, ok := store.Get("lim-dul's vault")
	require.True(t, ok)
	assert.Equal(t, "second", rec.Text)

	assert.Equal(t, []cards.Collision{{
		Key:      "lim-dul's vault",
		Kept:     "Lim-Dul's Vault",
		Replaced: "Lim-Dûl's Vault",
	}}, store.Collisions())

	// The winner keeps the loser's position in dataset order.
	records := store.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "Lim-Dul's Vault", records[0].Name)
	assert.Equal(t, "Island", records[1].Name)
}

func TestLoad_StrictCollisions(t *testing.T) {
	data := `{
		"Lim-Dûl's Vault": {"layout": "normal", "name": "Lim-Dûl's Vault"},
		"Lim-Dul's Vault": {"layout": "normal", "name": "Lim-Dul's Vault"}
	}`

	_, err := cards.Load([]byte(data), cards.WithStrictCollisions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, cards.ErrKeyCollision))
	assert.True(t, strings.Contains(err.Error(), "lim-dul's vault"))
}

func TestReadRecords_KeepsCollisionsAndUnsupported(t *testing.T) {
	data := `[
		{"layout": "normal", "name": "Lim-Dûl's Vault"},
		{"layout": "plane", "name": "Academy at Tolaria West"},
		{"layout": "normal", "name": "Lim-Dul's Vault"}
	]`

	records, err := cards.ReadRecords(strings.NewReader(data))
	require.NoError(t, err)

	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"Lim-Dûl's Vault", "Academy at Tolaria West", "Lim-Dul's Vault"}, names)

	// Building a store from the raw records still sees the collision.
	_, err = cards.NewStore(records, cards.WithStrictCollisions())
	assert.ErrorIs(t, err, cards.ErrKeyCollision)
}

func TestReadRecords_Malformed(t *testing.T) {
	_, err := cards.ReadRecords(strings.NewReader(`{"Island": `))
	assert.ErrorIs(t, err, cards.ErrDatasetMalformed)
}

func TestNewStore_MatchesLoad(t *testing.T) {
	loaded := cardstest.Store(t)

	rebuilt, err := cards.NewStore(loaded.Records())
	require.NoError(t, err)

	assert.Equal(t, loaded.Keys(), rebuilt.Keys())
	for _, key := range loaded.Keys() {
		want, _ := loaded.Get(key)
		got, ok := rebuilt.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
}

func TestParseLayout(t *testing.T) {
	assert.Equal(t, cards.LayoutDoubleFaced, cards.ParseLayout("double-faced"))
	assert.Equal(t, cards.LayoutUnsupported, cards.ParseLayout("aftermath"))
	assert.Equal(t, cards.LayoutUnsupported, cards.ParseLayout("Normal"))
	assert.Equal(t, "meld", cards.LayoutMeld.String())
	assert.True(t, cards.LayoutFlip.Composite())
	assert.False(t, cards.LayoutLeveler.Composite())
}
