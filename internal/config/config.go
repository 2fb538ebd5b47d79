package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverValkey = "valkey"
)

// Chat providers.
const (
	ChatProviderNone   = "none"
	ChatProviderOpenAI = "openai"
	ChatProviderHTTP   = "http"
)

// Config holds the yojana API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Dataset DatasetConfig `yaml:"dataset"`
	Storage StorageConfig `yaml:"storage"`
	Query   QueryConfig   `yaml:"query"`
	Chat    ChatConfig    `yaml:"chat"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds admin API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatasetConfig holds the schemes dataset location.
type DatasetConfig struct {
	Source     string `yaml:"source"` // file path or http(s) URL
	TimeoutSec int    `yaml:"timeout_sec"`
}

// StorageConfig holds personalization key-value store settings.
type StorageConfig struct {
	Driver           string   `yaml:"driver"` // memory, redis, valkey (default: memory)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	Standalone       bool     `yaml:"standalone"`
	KeyPrefix        string   `yaml:"key_prefix"`
	SessionTTLHours  int      `yaml:"session_ttl_hours"` // 0 = keep forever
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// QueryConfig holds pagination settings.
type QueryConfig struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

// ChatConfig holds the remote chat responder settings.
type ChatConfig struct {
	Provider     string  `yaml:"provider"` // none, openai, http (default: none)
	APIKey       string  `yaml:"api_key"`
	BaseURL      string  `yaml:"base_url"`
	Model        string  `yaml:"model"`
	EndpointURL  string  `yaml:"endpoint_url"`
	SystemPrompt string  `yaml:"system_prompt"`
	TimeoutSec   int     `yaml:"timeout_sec"`
	RatePerSec   float64 `yaml:"rate_per_sec"`
	Burst        int     `yaml:"burst"`
	// CacheTTLMin caches remote replies per normalized message. 0 disables the cache.
	CacheTTLMin int `yaml:"cache_ttl_min"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML bytes, expanding ${VAR} references, then applies defaults and validates.
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

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Dataset.Source == "" {
		c.Dataset.Source = "data/schemes.json"
	}
	if c.Dataset.TimeoutSec <= 0 {
		c.Dataset.TimeoutSec = 15
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverMemory
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "yojana:"
	}
	if c.Storage.ReadinessTimeout <= 0 {
		c.Storage.ReadinessTimeout = 10
	}
	if c.Query.DefaultPageSize <= 0 {
		c.Query.DefaultPageSize = 12
	}
	if c.Query.MaxPageSize <= 0 {
		c.Query.MaxPageSize = 100
	}
	if c.Chat.Provider == "" {
		c.Chat.Provider = ChatProviderNone
	}
	if c.Chat.Model == "" {
		c.Chat.Model = "gpt-3.5-turbo"
	}
	if c.Chat.SystemPrompt == "" {
		c.Chat.SystemPrompt = "You are a helpful assistant that explains Indian government schemes clearly and briefly."
	}
	if c.Chat.TimeoutSec <= 0 {
		c.Chat.TimeoutSec = 20
	}
	if c.Chat.RatePerSec <= 0 {
		c.Chat.RatePerSec = 1
	}
	if c.Chat.Burst <= 0 {
		c.Chat.Burst = 5
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverRedis, DriverValkey:
		if len(c.Storage.Addrs) == 0 {
			return fmt.Errorf("storage.addrs is required for driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("storage.driver must be %q, %q or %q, got %q",
			DriverMemory, DriverRedis, DriverValkey, c.Storage.Driver)
	}
	if c.Query.DefaultPageSize > c.Query.MaxPageSize {
		return fmt.Errorf("query.default_page_size (%d) exceeds query.max_page_size (%d)",
			c.Query.DefaultPageSize, c.Query.MaxPageSize)
	}
	switch c.Chat.Provider {
	case ChatProviderNone:
	case ChatProviderOpenAI:
		if c.Chat.APIKey == "" {
			return fmt.Errorf("chat.api_key is required for provider %q", ChatProviderOpenAI)
		}
	case ChatProviderHTTP:
		if c.Chat.EndpointURL == "" {
			return fmt.Errorf("chat.endpoint_url is required for provider %q", ChatProviderHTTP)
		}
	default:
		return fmt.Errorf("chat.provider must be %q, %q or %q, got %q",
			ChatProviderNone, ChatProviderOpenAI, ChatProviderHTTP, c.Chat.Provider)
	}
	if c.Chat.CacheTTLMin < 0 {
		return fmt.Errorf("chat.cache_ttl_min must not be negative, got %d", c.Chat.CacheTTLMin)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
