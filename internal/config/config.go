// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	API           APIConfig           `toml:"api"`
	TMDB          TMDBConfig          `toml:"tmdb"`
	Cache         CacheConfig         `toml:"cache"`
	Credentials   CredentialsConfig   `toml:"credentials"`
	Notifications NotificationsConfig `toml:"notifications"`
	Log           LogConfig           `toml:"log"`
	Search        SearchConfig        `toml:"search"`
}

type APIConfig struct {
	BaseURL string        `toml:"base_url"`
	Timeout time.Duration `toml:"timeout"`
}

type TMDBConfig struct {
	APIKey       string `toml:"api_key"`
	BaseURL      string `toml:"base_url"`
	ImageBaseURL string `toml:"image_base_url"`
	Language     string `toml:"language"`
}

// CacheConfig configures request deduplication and the persistent TMDB tier.
// An empty Path disables the persistent tier.
type CacheConfig struct {
	Path       string        `toml:"path"`
	DedupTTL   time.Duration `toml:"dedup_ttl"`
	PersistTTL time.Duration `toml:"persist_ttl"`
}

// CredentialsConfig locates the token database.
type CredentialsConfig struct {
	Path string `toml:"path"`
}

type NotificationsConfig struct {
	Window time.Duration `toml:"window"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type SearchConfig struct {
	Debounce    time.Duration `toml:"debounce"`
	HistorySize int           `toml:"history_size"`
}

// Load reads, parses and validates the configuration file.
// Unresolved environment variables and validation failures are returned together as *ConfigError.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cerr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cerr.HasErrors() {
		return nil, cerr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, applying
// defaults but skipping validation and missing-variable checks.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, missing, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:5000"
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 15 * time.Second
	}
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = "https://api.themoviedb.org"
	}
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = "https://image.tmdb.org/t/p/"
	}
	if c.TMDB.Language == "" {
		c.TMDB.Language = "en-US"
	}
	if c.Cache.DedupTTL == 0 {
		c.Cache.DedupTTL = 30 * time.Second
	}
	if c.Cache.PersistTTL == 0 {
		c.Cache.PersistTTL = 24 * time.Hour
	}
	if c.Credentials.Path == "" {
		c.Credentials.Path = filepath.Join(DefaultDataDir(), "auth.db")
	}
	if c.Notifications.Window == 0 {
		c.Notifications.Window = 100 * time.Millisecond
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Search.Debounce == 0 {
		c.Search.Debounce = 300 * time.Millisecond
	}
	if c.Search.HistorySize == 0 {
		c.Search.HistorySize = 10
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces ${VAR} references with environment values.
// Unresolved references are left in place and reported in missing.
// ${VAR:-default} uses default when VAR is unset or empty; ${VAR:?message}
// reports "VAR: message" when VAR is unset or empty.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name, op, arg := parts[1], parts[2], parts[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
			return value
		case ":?":
			if !ok || value == "" {
				missing = append(missing, fmt.Sprintf("%s: %s", name, arg))
				return match
			}
			return value
		}

		if !ok {
			missing = append(missing, name)
			return match
		}
		return value
	})
	return out, missing
}
