package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/drop.yaml
var defaultYAML []byte

// Load loads the game configuration.
// Search order: customPath -> ~/.drop/config.yaml -> ./configs/drop.yaml -> embedded default
// -> Default(). Only an explicit customPath that cannot be read or parsed is an error; a
// broken file further down the list is logged and skipped.
func Load(customPath string, logger *log.Logger) (Config, error) {
	return load(customPath, userConfigPath(), filepath.Join("configs", "drop.yaml"), logger)
}

func load(customPath, userPath, localPath string, logger *log.Logger) (Config, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userPath, localPath} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				logger.Warn("could not read config, skipping it", "path", path, "error", err)
			}
			continue
		}
		cfg, err := parse(data)
		if err != nil {
			logger.Warn("could not parse config, skipping it", "path", path, "error", err)
			continue
		}
		return cfg, nil
	}

	if cfg, err := parse(defaultYAML); err == nil {
		return cfg, nil
	}
	return Default(), nil
}

// parse decodes YAML on top of Default, so a partial file only overrides what it names.
func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".drop", "config.yaml")
}

// Dir returns ~/.drop, the directory for per-user files.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot get home directory: %w", err)
	}
	return filepath.Join(home, ".drop"), nil
}
