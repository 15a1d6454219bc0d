package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// fileConfig are the defaults a config file may supply. Flags override
// anything set here.
type fileConfig struct {
	Format    string `toml:"format"`    // default wire format (json, json-pretty, xml, yaml)
	Verbosity string `toml:"verbosity"` // default verbosity (compact, standard, full)
}

// loadConfig reads the TOML config file. With an explicit --config path a
// missing or malformed file is an error; at the default location a missing
// file just yields empty defaults.
func (c *CLI) loadConfig() (fileConfig, error) {
	path := c.configPath
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = defaultConfigPath(); err != nil {
			return fileConfig{}, nil
		}
	}

	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultConfigPath returns the XDG-standard config location
// (~/.config/sbomstore/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// orDefault returns the first non-empty string.
func orDefault(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
