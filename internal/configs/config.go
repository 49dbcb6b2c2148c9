package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ProjectConfigName is looked up in the working directory.
const ProjectConfigName = ".vault2vault.toml"

// Config holds defaults for command-line flags. Flags set explicitly on the
// command line take precedence.
type Config struct {
	Interactive         bool     `toml:"interactive"`
	Backup              bool     `toml:"backup"`
	IgnoreUndecryptable bool     `toml:"ignore_undecryptable"`
	VaultID             string   `toml:"vault_id"`
	OldPassFile         string   `toml:"old_pass_file"`
	NewPassFile         string   `toml:"new_pass_file"`
	Extensions          []string `toml:"extensions"`
	Exclude             []string `toml:"exclude"`

	// Path is where the config was loaded from, empty when none was found.
	Path string `toml:"-"`
	// Unknown lists keys in the file that are not recognised.
	Unknown []string `toml:"-"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Extensions: []string{".yaml", ".yml"},
	}
}

// Load reads the config file. An explicit path must exist; otherwise the
// working directory and then the user config directory are searched, and
// the defaults are returned when neither has a file.
func Load(explicit string) (*Config, error) {
	if explicit != "" {
		return loadFile(explicit)
	}

	for _, candidate := range searchPaths() {
		if _, err := os.Stat(candidate); err == nil {
			return loadFile(candidate)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("checking config %s: %w", candidate, err)
		}
	}

	return DefaultConfig(), nil
}

func loadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	unknown, err := LoadTOML(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	cfg.Path = path
	cfg.Unknown = unknown
	return cfg, nil
}

func searchPaths() []string {
	paths := []string{ProjectConfigName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "vault2vault", "config.toml"))
	}
	return paths
}
