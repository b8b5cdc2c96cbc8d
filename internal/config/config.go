package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

// FileName is the config file name looked up in every search directory.
const FileName = "rabbit_tools.toml"

// SystemDir is the machine-wide config directory, searched first.
var SystemDir = "/etc/rabbit_tools"

// ErrConfigMissing is returned when no config file could be found.
var ErrConfigMissing = errors.New("config file has not been found; use `rabbit-tools config init` to generate it")

// RabbitTools holds the management API connection settings.
type RabbitTools struct {
	Scheme         string `toml:"scheme" env:"RABBIT_TOOLS_SCHEME"`
	Host           string `toml:"host" env:"RABBIT_TOOLS_HOST"`
	Port           int    `toml:"port" env:"RABBIT_TOOLS_PORT"`
	User           string `toml:"user" env:"RABBIT_TOOLS_USER"`
	Password       string `toml:"password" env:"RABBIT_TOOLS_PASSWORD"`
	Vhost          string `toml:"vhost" env:"RABBIT_TOOLS_VHOST"`
	TimeoutSeconds int    `toml:"timeout_seconds" env:"RABBIT_TOOLS_TIMEOUT"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level" env:"RABBIT_TOOLS_LOG_LEVEL"`
	Format string `toml:"format" env:"RABBIT_TOOLS_LOG_FORMAT"`
	File   string `toml:"file" env:"RABBIT_TOOLS_LOG_FILE"`
}

// Config encapsulates all configuration values for rabbit-tools.
type Config struct {
	RabbitTools RabbitTools `toml:"rabbit_tools"`
	Logging     Logging     `toml:"logging"`
}

// UserDir returns the per-user config directory.
func UserDir() (string, error) {
	return expandPath("~/.rabbit_tools")
}

// SearchPaths lists the config file locations in lookup order.
func SearchPaths() ([]string, error) {
	userDir, err := UserDir()
	if err != nil {
		return nil, err
	}
	return []string{
		filepath.Join(SystemDir, FileName),
		filepath.Join(userDir, FileName),
	}, nil
}

// Load locates, parses, and validates a configuration file, then applies
// RABBIT_TOOLS_* environment overrides. An explicit path must exist; without
// one the search paths are tried in order. The resolved path is returned.
func Load(path string) (*Config, string, error) {
	resolved, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", err
	}

	cfg := Default()
	file, err := os.Open(resolved)
	if err != nil {
		return nil, "", fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, "", fmt.Errorf("parse config %s: %w", resolved, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, "", fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, resolved, nil
}

func resolveConfigPath(path string) (string, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := expandPath(strings.TrimSpace(path))
		if err != nil {
			return "", err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return "", fmt.Errorf("%s: %w", expanded, ErrConfigMissing)
			}
			return "", fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("config path %s is a directory", expanded)
		}
		return expanded, nil
	}

	candidates, err := SearchPaths()
	if err != nil {
		return "", err
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", ErrConfigMissing
}

// ManagementURL returns the base URL of the broker's management API.
func (c *Config) ManagementURL() string {
	host := net.JoinHostPort(c.RabbitTools.Host, strconv.Itoa(c.RabbitTools.Port))
	return c.RabbitTools.Scheme + "://" + host
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
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
