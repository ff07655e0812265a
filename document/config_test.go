package document

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smasonuk/polyedit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, time.Minute, cfg.AutoSaveInterval())
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	src := "auto_save_seconds = 5\nversion_prefix = \"snap-\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(src), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.AutoSaveSeconds)
	assert.Equal(t, "snap-", cfg.VersionPrefix)
	assert.Equal(t, "current.mesh", cfg.CurrentFile)
	assert.Equal(t, ".mesh", cfg.VersionSuffix)
}

func TestLoadConfigErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{"unknown key", "autosave = 5\n"},
		{"bad syntax", "auto_save_seconds = \n"},
		{"negative interval", "auto_save_seconds = -1\n"},
		{"empty current file", "current_file = \"\"\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(tc.src), 0o644))

			_, err := LoadConfig(dir)
			var fe *FileError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, "parse", fe.Op)
		})
	}
}

func TestWriteConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.AutoSaveSeconds = 0
	cfg.CurrentFile = "work.mesh"

	require.NoError(t, WriteConfig(dir, cfg))
	loaded, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDocumentUsesFolderConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.CurrentFile = "work.mesh"
	cfg.VersionPrefix = "v"
	cfg.AutoSaveSeconds = 0
	require.NoError(t, WriteConfig(dir, cfg))

	d, err := FromFolder(dir)
	require.NoError(t, err)
	d.SetCurrent(polyedit.NewCube())

	// auto-save is off
	require.NoError(t, d.TickAutoSave(time.Now().Add(time.Hour)))
	assert.NoFileExists(t, filepath.Join(dir, "work.mesh"))

	n, err := d.SaveVersion()
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "work.mesh"))
	assert.FileExists(t, filepath.Join(dir, "v1.mesh"))
	assert.Equal(t, 1, n)
}
