package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the optional per-folder settings file.
const ConfigFileName = "polyedit.toml"

// Config controls where a document keeps its files and how often it saves.
type Config struct {
	// AutoSaveSeconds is the minimum time between auto-saves. Zero turns
	// auto-save off.
	AutoSaveSeconds int    `toml:"auto_save_seconds"`
	CurrentFile     string `toml:"current_file"`
	VersionPrefix   string `toml:"version_prefix"`
	VersionSuffix   string `toml:"version_suffix"`
}

func DefaultConfig() Config {
	return Config{
		AutoSaveSeconds: 60,
		CurrentFile:     "current.mesh",
		VersionPrefix:   "version_",
		VersionSuffix:   ".mesh",
	}
}

func (c Config) AutoSaveInterval() time.Duration {
	return time.Duration(c.AutoSaveSeconds) * time.Second
}

func (c Config) versionFile(n int) string {
	return fmt.Sprintf("%s%d%s", c.VersionPrefix, n, c.VersionSuffix)
}

func (c Config) validate() error {
	switch {
	case c.AutoSaveSeconds < 0:
		return fmt.Errorf("auto_save_seconds must not be negative, got %d", c.AutoSaveSeconds)
	case c.CurrentFile == "":
		return errors.New("current_file must not be empty")
	case c.VersionPrefix == "" && c.VersionSuffix == "":
		return errors.New("version_prefix and version_suffix must not both be empty")
	}
	return nil
}

// LoadConfig returns the defaults overridden by dir/polyedit.toml, if present.
// Keys the file leaves out keep their default value; unknown keys are an
// error.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(dir, ConfigFileName)

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, &FileError{Op: "read", Path: path, Err: err}
	}
	defer file.Close()

	dec := toml.NewDecoder(file)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, &FileError{Op: "parse", Path: path, Err: err}
	}
	if err := cfg.validate(); err != nil {
		return cfg, &FileError{Op: "parse", Path: path, Err: err}
	}
	return cfg, nil
}

// WriteConfig stores cfg as dir/polyedit.toml.
func WriteConfig(dir string, cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}
