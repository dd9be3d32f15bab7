package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Storage.Driver != DriverFile {
		t.Errorf("Storage.Driver = %q, want file", cfg.Storage.Driver)
	}
	if cfg.Storage.Path == "" {
		t.Error("Storage.Path should default to a data directory")
	}
	if cfg.SearchThreshold() != 0.2 {
		t.Errorf("SearchThreshold() = %g, want 0.2", cfg.SearchThreshold())
	}
	if cfg.Keywords.Strategy != "domain" {
		t.Errorf("Keywords.Strategy = %q, want domain", cfg.Keywords.Strategy)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("HTTP.Port = %d, want 8080", cfg.HTTP.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
storage:
  driver: redis
  redis:
    addrs: ["localhost:6379"]
    key_prefix: shop
search:
  threshold: 0
  limit: 5
keywords:
  strategy: generic
  max_results: 4
logging:
  env: prod
  level: info
http:
  port: 9090
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if cfg.Storage.Driver != DriverRedis || cfg.Storage.Redis.KeyPrefix != "shop" {
		t.Errorf("unexpected storage config: %+v", cfg.Storage)
	}
	if cfg.SearchThreshold() != 0 {
		t.Errorf("explicit threshold 0 was overridden: %g", cfg.SearchThreshold())
	}
	if cfg.Search.Limit != 5 || cfg.Keywords.Strategy != "generic" || cfg.Keywords.MaxResults != 4 {
		t.Errorf("unexpected search/keywords config: %+v %+v", cfg.Search, cfg.Keywords)
	}
	if cfg.HTTP.Port != 9090 || cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("unexpected http config: %+v", cfg.HTTP)
	}
}

func TestParse_ExpandsEnvVars(t *testing.T) {
	t.Setenv("PRODCAT_TEST_PASSWORD", "s3cret")

	cfg, err := Parse([]byte(`
storage:
  driver: redis
  redis:
    addrs: ["${PRODCAT_TEST_HOST:-127.0.0.1:6379}"]
    password: ${PRODCAT_TEST_PASSWORD}
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if cfg.Storage.Redis.Password != "s3cret" {
		t.Errorf("Password = %q, want s3cret", cfg.Storage.Redis.Password)
	}
	if cfg.Storage.Redis.Addrs[0] != "127.0.0.1:6379" {
		t.Errorf("Addrs[0] = %q, want default", cfg.Storage.Redis.Addrs[0])
	}
}

func TestValidate(t *testing.T) {
	neg := -0.5
	high := 1.5

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown driver", func(c *Config) { c.Storage.Driver = "sqlite" }, "storage.driver"},
		{"redis without addrs", func(c *Config) { c.Storage.Driver = DriverRedis }, "storage.redis.addrs"},
		{"negative threshold", func(c *Config) { c.Search.Threshold = &neg }, "search.threshold"},
		{"threshold above one", func(c *Config) { c.Search.Threshold = &high }, "search.threshold"},
		{"negative limit", func(c *Config) { c.Search.Limit = -1 }, "search.limit"},
		{"unknown strategy", func(c *Config) { c.Keywords.Strategy = "tfidf" }, "keywords.strategy"},
		{"negative max results", func(c *Config) { c.Keywords.MaxResults = -2 }, "keywords.max_results"},
		{"port out of range", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prodcat.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  driver: memory\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Storage.Driver != DriverMemory {
		t.Errorf("Storage.Driver = %q, want memory", cfg.Storage.Driver)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoad_SearchPathFallsBackToDefaults(t *testing.T) {
	testChdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Storage.Driver != DriverFile {
		t.Errorf("Storage.Driver = %q, want file", cfg.Storage.Driver)
	}
}

func TestLoad_SearchPathFindsWorkingDirFile(t *testing.T) {
	dir := t.TempDir()
	testChdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("search:\n  limit: 3\n"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Search.Limit != 3 {
		t.Errorf("Search.Limit = %d, want 3", cfg.Search.Limit)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("storage: [")); err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("expected parse error, got %v", err)
	}
	if _, err := Parse([]byte("storage:\n  driver: floppy\n")); err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("expected validation error, got %v", err)
	}
}

// testChdir changes the working directory for the duration of the test (pre-Go 1.24 stand-in for t.Chdir)
func testChdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
