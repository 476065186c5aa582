package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ughe/ocreval/doc"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestLoadMissing(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	s, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, Settings{
		Doc:          doc.Options{Form: doc.None, EnsureNewline: true},
		CacheEnabled: true,
		CacheDir:     "/tmp/cache/ocreval",
		DBPath:       "/tmp/data/ocreval/history.db",
		LogLevel:     "info",
	}, s)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[accuracy]
normalize = "nfc"
ensure-newline = false

[batch]
workers = 4

[cache]
enabled = false
dir = "/var/cache/ocr"

[history]
enabled = true
db = "runs.db"

[log]
level = "debug"
`)
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc.Options{Form: doc.NFC}, s.Doc)
	assert.Equal(t, 4, s.Workers)
	assert.False(t, s.CacheEnabled)
	assert.Equal(t, "/var/cache/ocr", s.CacheDir)
	assert.True(t, s.HistoryEnabled)
	assert.Equal(t, "runs.db", s.DBPath)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	for name, text := range map[string]string{
		"Should reject an unknown form":     "[accuracy]\nnormalize = \"nfkd\"\n",
		"Should reject negative workers":    "[batch]\nworkers = -1\n",
		"Should reject an unknown level":    "[log]\nlevel = \"loud\"\n",
		"Should reject an unknown key":      "[cache]\nsize = 10\n",
		"Should reject invalid TOML":        "[accuracy\n",
		"Should reject a wrongly typed key": "[batch]\nworkers = \"four\"\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, text))
			assert.Error(t, err)
		})
	}
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	assert.Equal(t, "/cfg/ocreval/config.toml", DefaultConfigPath())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/tess")
	assert.Equal(t, "/home/tess/.config/ocreval/config.toml", DefaultConfigPath())
}
