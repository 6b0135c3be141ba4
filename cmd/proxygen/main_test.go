package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/proxygen/internal/cards"
	"github.com/ramonehamilton/proxygen/internal/cards/cardstest"
	"github.com/ramonehamilton/proxygen/internal/decklist"
)

type fixture struct {
	dir        string
	dataset    string
	configPath string
}

// newFixture writes the test dataset and a config file pointing at it.
func newFixture(t *testing.T, extra string) fixture {
	t.Helper()

	dir := t.TempDir()
	f := fixture{
		dir:        dir,
		dataset:    filepath.Join(dir, "AllCards.json"),
		configPath: filepath.Join(dir, "config.toml"),
	}
	require.NoError(t, os.WriteFile(f.dataset, cardstest.Dataset(), 0o644))

	cfg := fmt.Sprintf(`
[dataset]
path = %q
db_path = %q

[log]
level = "error"
%s`, f.dataset, filepath.Join(dir, "cards.db"), extra)
	require.NoError(t, os.WriteFile(f.configPath, []byte(cfg), 0o644))
	return f
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "proxygen dev"), out)
}

func TestLookup(t *testing.T) {
	f := newFixture(t, "")

	out, err := run(t, "", "--config", f.configPath, "lookup", "Fire", "//", "Ice")
	require.NoError(t, err)
	assert.Contains(t, out, "[Split]")
	assert.Contains(t, out, "Fire")
	assert.Contains(t, out, "Ice")
}

func TestLookup_Unknown(t *testing.T) {
	f := newFixture(t, "")

	out, err := run(t, "", "--config", f.configPath, "lookup", "Snapcastor", "Mage")
	require.Error(t, err)
	assert.ErrorIs(t, err, cards.ErrInvalidCardName)
	assert.Contains(t, out, "Did you mean:")
	assert.Contains(t, out, "Snapcaster Mage")
}

func TestRender_StdinText(t *testing.T) {
	f := newFixture(t, "")

	out, err := run(t, "2x Lightning Bolt\nJace, the Mind Sculptor\n",
		"--config", f.configPath, "render", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "2x\nLightning Bolt {R}\nInstant\n")
	assert.Contains(t, out, "Loyalty: 3")
}

func TestRender_List(t *testing.T) {
	f := newFixture(t, "")

	out, err := run(t, "4x lightning bolt\nSideboard\n2 Island\n",
		"--config", f.configPath, "render", "--format", "list")
	require.NoError(t, err)
	assert.Equal(t, "4 Lightning Bolt\n2 Island\n", out)
}

func TestRender_HTMLFile(t *testing.T) {
	f := newFixture(t, "")

	deck := filepath.Join(f.dir, "deck.txt")
	require.NoError(t, os.WriteFile(deck, []byte("3 Island\nDelver of Secrets"), 0o644))
	outPath := filepath.Join(f.dir, "proxies.html")

	_, err := run(t, "", "--config", f.configPath, "render", deck, "--out", outPath)
	require.NoError(t, err)

	html, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "4 cards.")
	assert.Contains(t, string(html), "Insectile Aberration")
}

func TestRender_Limits(t *testing.T) {
	f := newFixture(t, "[decklist]\nmax_total_count = 4\n")

	_, err := run(t, "5 Island", "--config", f.configPath, "render")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many cards")

	_, err = run(t, "5 Island", "--config", f.configPath, "render", "--max-cards", "0")
	assert.NoError(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteEntries_PropagatesWriteErrors(t *testing.T) {
	entries, err := decklist.ParseDecklist(cardstest.Store(t), "2 Island", 10)
	require.NoError(t, err)

	for _, format := range []string{"html", "text", "list"} {
		t.Run(format, func(t *testing.T) {
			assert.ErrorContains(t, writeEntries(failingWriter{}, format, entries), "disk full")
		})
	}
}

func TestRender_OutputDirMissing(t *testing.T) {
	f := newFixture(t, "")

	_, err := run(t, "Island", "--config", f.configPath, "render",
		"--out", filepath.Join(f.dir, "missing", "proxies.html"))
	assert.ErrorContains(t, err, "create output")
}

func TestRender_BadFormat(t *testing.T) {
	f := newFixture(t, "")

	_, err := run(t, "Island", "--config", f.configPath, "render", "--format", "pdf")
	assert.ErrorContains(t, err, "unknown format")
}

func TestImportThenLookupFromSnapshot(t *testing.T) {
	f := newFixture(t, "")

	out, err := run(t, "", "--config", f.configPath, "import", f.dataset)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 22 cards")

	snapCfg := filepath.Join(f.dir, "sqlite.toml")
	cfg := fmt.Sprintf("[dataset]\nsource = \"sqlite\"\ndb_path = %q\n\n[log]\nlevel = \"error\"\n", filepath.Join(f.dir, "cards.db"))
	require.NoError(t, os.WriteFile(snapCfg, []byte(cfg), 0o644))

	out, err = run(t, "", "--config", snapCfg, "lookup", "Delver of Secrets")
	require.NoError(t, err)
	assert.Contains(t, out, "[Double-faced]")

	_, err = run(t, "", "--config", snapCfg, "lookup", "Academy at Tolaria West")
	assert.ErrorIs(t, err, cards.ErrInvalidCardName, "unsupported layouts are filtered when the store is built")
}

const collidingDataset = `{
	"Lim-Dûl's Vault": {"layout": "normal", "name": "Lim-Dûl's Vault", "types": ["Instant"]},
	"Lim-Dul's Vault": {"layout": "normal", "name": "Lim-Dul's Vault", "types": ["Instant"]}
}`

func TestImport_StrictCollisions(t *testing.T) {
	f := newFixture(t, "")
	dataset := filepath.Join(f.dir, "colliding.json")
	require.NoError(t, os.WriteFile(dataset, []byte(collidingDataset), 0o644))

	// Lenient import keeps both records in the snapshot.
	out, err := run(t, "", "--config", f.configPath, "import", dataset)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 cards")

	// A strict server refuses the snapshot.
	db := filepath.Join(f.dir, "cards.db")
	strictCfg := filepath.Join(f.dir, "strict.toml")
	cfg := fmt.Sprintf("[dataset]\nsource = \"sqlite\"\ndb_path = %q\nstrict_collisions = true\n\n[log]\nlevel = \"error\"\n", db)
	require.NoError(t, os.WriteFile(strictCfg, []byte(cfg), 0o644))

	_, err = run(t, "", "--config", strictCfg, "lookup", "Lim-Dul's Vault")
	assert.ErrorIs(t, err, cards.ErrKeyCollision)

	// A strict import fails before writing a snapshot.
	_, err = run(t, "", "--config", strictCfg, "import", dataset)
	assert.ErrorIs(t, err, cards.ErrKeyCollision)
}

func TestInvalidConfig(t *testing.T) {
	f := newFixture(t, "")

	_, err := run(t, "", "--config", f.configPath, "--log-level", "loud", "lookup", "Island")
	assert.ErrorContains(t, err, "invalid configuration")
}
