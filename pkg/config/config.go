package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Config holds the persistent download defaults. Command-line flags
// override whatever is loaded here.
type Config struct {
	OutputDir          string `toml:"output_dir"`
	PageSize           int    `toml:"page_size"`
	Workers            int    `toml:"workers"`
	RestrictCharacters bool   `toml:"restrict_characters"`
	Cookies            string `toml:"cookies"`
}

// Default returns the built-in configuration: download into the
// working directory, one image worker, full metadata page.
func Default() Config {
	return Config{
		OutputDir: ".",
		PageSize:  5000,
		Workers:   1,
	}
}

// DefaultConfigPath returns the absolute path of the default
// configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/tapas-dl/config.toml")
}

// Load parses the configuration file over the defaults. An explicit
// path must exist; the default location is optional and skipped
// silently when absent.
func Load(path string) (Config, error) {
	cfg := Default()

	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return cfg, err
	}
	if !exists {
		if path != "" {
			return cfg, fmt.Errorf("config %s does not exist", resolved)
		}
		return cfg, nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.OutputDir, err = expandPath(cfg.OutputDir); err != nil {
		return cfg, err
	}
	if cfg.Cookies != "" {
		if cfg.Cookies, err = expandPath(cfg.Cookies); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// CreateSample writes the sample configuration file to the specified
// location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
