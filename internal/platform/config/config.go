// Package config loads application configuration from an optional YAML file
// and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"fred_dashboard/internal/platform/externalapi/fred"
	"fred_dashboard/internal/platform/redis"
)

const (
	// EnvConfigPath points at the YAML configuration file.
	EnvConfigPath = "APP_CONFIG"
	// DefaultPath is used when APP_CONFIG is unset.
	DefaultPath = "config.yaml"

	defaultAddr      = ":8080"
	defaultCacheTTL  = time.Hour
	defaultNamespace = "fred"
	defaultLogDir    = "logs"
	defaultLogLevel  = "info"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr             string   `yaml:"addr"`
		GinMode          string   `yaml:"gin_mode"`
		CORSAllowOrigins []string `yaml:"cors_allow_origins"`
	} `yaml:"server"`
	Fred  fred.Config `yaml:"fred"`
	Cache struct {
		TTL           time.Duration `yaml:"ttl"`
		Namespace     string        `yaml:"namespace"`
		MemoryEntries int           `yaml:"memory_entries"`
	} `yaml:"cache"`
	Redis redis.Options `yaml:"redis"`
	Log   struct {
		Dir   string `yaml:"dir"`
		Level string `yaml:"level"`
	} `yaml:"log"`

	credentialErr error
}

// Path returns the configuration file path from APP_CONFIG or the default.
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error. A missing FRED API key is not an error either;
// it is reported by CredentialError so the server can still start.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	cfg.credentialErr = cfg.Fred.Validate()

	return cfg, nil
}

// CredentialError returns the FRED credential problem found at load time, if any.
func (c *Config) CredentialError() error {
	return c.credentialErr
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(fred.EnvAPIKey); v != "" {
		c.Fred.APIKey = v
	}
	if v := os.Getenv("FRED_BASE_URL"); v != "" {
		c.Fred.BaseURL = v
	}
	if v := os.Getenv("FRED_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FRED_TIMEOUT: %w", err)
		}
		c.Fred.Timeout = d
	}
	if v := os.Getenv("FRED_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FRED_RATE_LIMIT: %w", err)
		}
		c.Fred.RateLimit = n
	}
	if v := os.Getenv("APP_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		c.Server.GinMode = v
	}
	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		c.Server.CORSAllowOrigins = splitList(v)
	}
	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CACHE_TTL: %w", err)
		}
		c.Cache.TTL = d
	}
	if v := os.Getenv("CACHE_NAMESPACE"); v != "" {
		c.Cache.Namespace = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		c.Redis.Port = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("LOG_DIR"); v != "" {
		c.Log.Dir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if len(c.Server.CORSAllowOrigins) == 0 {
		c.Server.CORSAllowOrigins = []string{"*"}
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = defaultCacheTTL
	}
	if c.Cache.Namespace == "" {
		c.Cache.Namespace = defaultNamespace
	}
	if c.Log.Dir == "" {
		c.Log.Dir = defaultLogDir
	}
	if c.Log.Level == "" {
		c.Log.Level = defaultLogLevel
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
