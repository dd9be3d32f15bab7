package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = "prodcat.yaml"

// Storage drivers.
const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Config holds the prodcat configuration.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Search   SearchConfig   `yaml:"search"`
	Keywords KeywordsConfig `yaml:"keywords"`
	Logging  LoggingConfig  `yaml:"logging"`
	HTTP     HTTPConfig     `yaml:"http"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Driver string      `yaml:"driver"` // file, redis, memory (default: file)
	Path   string      `yaml:"path"`   // data directory for the file driver
	Redis  RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds ranking defaults.
type SearchConfig struct {
	// Threshold is a pointer so an explicit 0 survives ApplyDefaults.
	Threshold *float64 `yaml:"threshold"`
	Limit     int      `yaml:"limit"` // 0 = unlimited
}

// KeywordsConfig holds keyword suggestion settings.
type KeywordsConfig struct {
	Strategy       string `yaml:"strategy"`    // domain, generic (default: domain)
	MaxResults     int    `yaml:"max_results"` // 0 = strategy default
	VocabularyFile string `yaml:"vocabulary_file"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Env   string `yaml:"env"`   // prod, local, dev (default: local)
	Level string `yaml:"level"` // debug, info, warn, error (default: warn)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// Default returns a configuration with every default applied.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// Load reads configuration from path. An empty path searches ./prodcat.yaml and
// $HOME/.prodcat/config.yaml and falls back to Default when neither exists.
func Load(path string) (Config, error) {
	if path == "" {
		path = findConfigPath()
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${VAR} references first.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverFile
	}
	if c.Storage.Path == "" {
		c.Storage.Path = defaultDataDir()
	}
	if c.Storage.Redis.KeyPrefix == "" {
		c.Storage.Redis.KeyPrefix = "prodcat"
	}
	if c.Storage.Redis.ReadinessTimeout <= 0 {
		c.Storage.Redis.ReadinessTimeout = 10
	}
	if c.Search.Threshold == nil {
		threshold := 0.2
		c.Search.Threshold = &threshold
	}
	if c.Keywords.Strategy == "" {
		c.Keywords.Strategy = "domain"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "local"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverMemory:
	case DriverRedis:
		if len(c.Storage.Redis.Addrs) == 0 {
			return errors.New("storage.redis.addrs is required for the redis driver")
		}
	default:
		return fmt.Errorf("storage.driver must be file, redis or memory, got %q", c.Storage.Driver)
	}

	if t := c.SearchThreshold(); t < 0 || t > 1 {
		return fmt.Errorf("search.threshold must be between 0 and 1, got %g", t)
	}
	if c.Search.Limit < 0 {
		return fmt.Errorf("search.limit must be >= 0, got %d", c.Search.Limit)
	}

	switch c.Keywords.Strategy {
	case "domain", "generic":
	default:
		return fmt.Errorf("keywords.strategy must be \"domain\" or \"generic\", got %q", c.Keywords.Strategy)
	}
	if c.Keywords.MaxResults < 0 {
		return fmt.Errorf("keywords.max_results must be >= 0, got %d", c.Keywords.MaxResults)
	}

	if c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	return nil
}

// SearchThreshold returns the configured threshold, or 0.2 when unset.
func (c *Config) SearchThreshold() float64 {
	if c.Search.Threshold == nil {
		return 0.2
	}
	return *c.Search.Threshold
}

// findConfigPath returns the first existing config file, or "".
func findConfigPath() string {
	if fileExists(DefaultFileName) {
		return DefaultFileName
	}
	if home, err := os.UserHomeDir(); err == nil {
		if path := filepath.Join(home, ".prodcat", "config.yaml"); fileExists(path) {
			return path
		}
	}
	return ""
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".prodcat", "data")
	}
	return filepath.Join(".prodcat", "data")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
