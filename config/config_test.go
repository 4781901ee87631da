package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Store.Type)
	assert.Equal(t, "My Blog", cfg.Site.Title)
	assert.Equal(t, "https://example.com/favicon.ico", cfg.Site.Icon)
	assert.Equal(t, "admin", cfg.Admin.User)
	assert.Equal(t, "admin123", cfg.Admin.Password)
	assert.Equal(t, 8, cfg.Admin.MinPasswordLength)
	assert.Equal(t, 8, cfg.Search.Concurrency)
	assert.Equal(t, 10*time.Second, cfg.GetShutdownTimeout())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: 9090
store:
  type: file
  path: /var/lib/blog
site:
  title: Notes
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := load(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "file", cfg.Store.Type)
	assert.Equal(t, "/var/lib/blog", cfg.Store.Path)
	assert.Equal(t, "Notes", cfg.Site.Title)
	assert.Equal(t, "https://example.com/favicon.ico", cfg.Site.Icon)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BLOG_SERVER_PORT", "7000")
	t.Setenv("BLOG_STORE_TYPE", "memory")

	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Store.Type)
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [\n"), 0644))

	_, err := load(viper.New(), dir)
	assert.Error(t, err)
}

func TestDurationFallback(t *testing.T) {
	var cfg Config
	cfg.Importer.Timeout = "soon"
	assert.Equal(t, 30*time.Minute, cfg.GetImportTimeout())
}
