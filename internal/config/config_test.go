package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, 300, c.Decklist.MaxTotalCount)
	assert.Equal(t, SourceJSON, c.Dataset.Source)
	assert.Equal(t, ":8080", c.Addr())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[dataset]
source = "sqlite"
db_path = "/var/lib/proxygen/cards.db"

[decklist]
max_total_count = 60
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, SourceSQLite, c.Dataset.Source)
	assert.Equal(t, "/var/lib/proxygen/cards.db", c.Dataset.DBPath)
	assert.Equal(t, 60, c.Decklist.MaxTotalCount)
	assert.Equal(t, 8080, c.Server.Port)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\nport = "), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config file")
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	want := DefaultConfig()
	want.Server.Port = 9090
	want.API.AllowedOrigins = []string{"https://example.com"}
	want.Log.Development = true
	require.NoError(t, want.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative port", func(c *Config) { c.Server.Port = -1 }},
		{"bad read timeout", func(c *Config) { c.Server.ReadTimeout = "soon" }},
		{"negative shutdown timeout", func(c *Config) { c.Server.ShutdownTimeout = "-1s" }},
		{"zero body size", func(c *Config) { c.Server.MaxBodyBytes = 0 }},
		{"unknown source", func(c *Config) { c.Dataset.Source = "yaml" }},
		{"json without path", func(c *Config) { c.Dataset.Path = "" }},
		{"sqlite without db", func(c *Config) { c.Dataset.Source = SourceSQLite }},
		{"negative max count", func(c *Config) { c.Decklist.MaxTotalCount = -5 }},
		{"negative rate", func(c *Config) { c.API.RateLimit = -1 }},
		{"zero burst", func(c *Config) { c.API.RateBurst = 0 }},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestTimeouts(t *testing.T) {
	read, write, request, shutdown := DefaultConfig().Timeouts()
	assert.Equal(t, 15*time.Second, read)
	assert.Equal(t, 30*time.Second, write)
	assert.Equal(t, 30*time.Second, request)
	assert.Equal(t, 10*time.Second, shutdown)
}
