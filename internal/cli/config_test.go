package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.Cache.Enabled {
		t.Error("caching should default to enabled")
	}
	if cfg.Build.Strategy != "deterministic" {
		t.Errorf("default strategy = %q, want deterministic", cfg.Build.Strategy)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("default addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[cache]
enabled = false
redis_addr = "localhost:6379"

[build]
strategy = "random"
seed = 99

[server]
addr = ":9000"
mongo_uri = "mongodb://localhost:27017"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Cache.Enabled {
		t.Error("cache.enabled should be false")
	}
	if cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("redis_addr = %q", cfg.Cache.RedisAddr)
	}
	if cfg.Build.Strategy != "random" || cfg.Build.Seed != 99 {
		t.Errorf("build config = %+v", cfg.Build)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}

	// Unset fields keep their defaults
	if cfg.Server.MongoDatabase != appName {
		t.Errorf("mongo_database = %q, want %q", cfg.Server.MongoDatabase, appName)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("loading a missing file should fail")
	}
}
