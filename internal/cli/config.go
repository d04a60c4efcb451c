package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk CLI configuration, read from
// ~/.config/schreier/config.toml (or $XDG_CONFIG_HOME/schreier/config.toml).
// All fields have working defaults; the file is optional.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Build  BuildConfig  `toml:"build"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig configures the result cache.
type CacheConfig struct {
	// Enabled turns result caching on. Defaults to true.
	Enabled bool `toml:"enabled"`

	// Dir overrides the XDG cache directory.
	Dir string `toml:"dir"`

	// RedisAddr switches the serve command to a redis backend when set,
	// e.g. "localhost:6379".
	RedisAddr string `toml:"redis_addr"`
}

// BuildConfig configures stabilizer chain construction.
type BuildConfig struct {
	// Strategy is "deterministic" or "random".
	Strategy string `toml:"strategy"`

	// Seed feeds the randomized builder and element sampling.
	Seed int64 `toml:"seed"`

	// Retries bounds random sift attempts for the randomized strategy.
	Retries int `toml:"retries"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`

	// MongoURI enables the MongoDB catalog store when set.
	MongoURI string `toml:"mongo_uri"`

	// MongoDatabase names the catalog database. Defaults to "schreier".
	MongoDatabase string `toml:"mongo_database"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Cache: CacheConfig{Enabled: true},
		Build: BuildConfig{Strategy: "deterministic"},
		Server: ServerConfig{
			Addr:          ":8080",
			MongoDatabase: appName,
		},
	}
}

// LoadConfig reads and decodes the config file at path on top of defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigOrDefault loads the standard config file, falling back to
// defaults when it is absent or unreadable. Configuration problems never
// block the CLI.
func LoadConfigOrDefault() Config {
	path, err := configPath()
	if err != nil {
		return DefaultConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// configPath returns the config file location using the XDG standard.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
