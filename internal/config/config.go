package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Common
	Env        string
	LogLevel   string
	ConfigFile string
	// API
	Port string
	// Provider
	Provider       string
	QuoteURL       string
	RequestTimeout time.Duration
	// Widget
	RefreshInterval time.Duration
	Placeholder     string
	// Worker
	WorkerType string
	// Timeline store
	TimelineBackend string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
}

// fileConfig is the optional YAML overlay pointed to by CONFIG_FILE.
type fileConfig struct {
	QuoteURL        string `yaml:"quote_url"`
	RefreshInterval string `yaml:"refresh_interval"`
	Placeholder     string `yaml:"placeholder"`
	LogLevel        string `yaml:"log_level"`
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// Load reads environment variables and applies defaults.
// A YAML file named by CONFIG_FILE overrides the widget settings it sets.
func Load() Config {
	cfg := Config{
		Env:             getEnv("ENV", "local"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ConfigFile:      getEnv("CONFIG_FILE", ""),
		Port:            getEnv("PORT", "8080"),
		Provider:        getEnv("PROVIDER", "blockchain"),
		QuoteURL:        getEnv("QUOTE_URL", DefaultQuoteURL),
		RequestTimeout:  time.Duration(atoiDef(getEnv("REQUEST_TIMEOUT_MS", "0"), 0)) * time.Millisecond,
		RefreshInterval: time.Duration(atoiDef(getEnv("REFRESH_INTERVAL_MS", ""), int(DefaultRefreshInterval/time.Millisecond))) * time.Millisecond,
		Placeholder:     getEnv("PLACEHOLDER", DefaultPlaceholder),
		WorkerType:      getEnv("WORKER_TYPE", "standalone"),
		TimelineBackend: getEnv("TIMELINE_BACKEND", "redis"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         atoiDef(getEnv("REDIS_DB", "0"), 0),
	}
	if cfg.ConfigFile != "" {
		// A broken overlay leaves the env values in place.
		_ = cfg.LoadFile(cfg.ConfigFile)
	}
	return cfg
}

// LoadFile applies the YAML overlay at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if fc.QuoteURL != "" {
		c.QuoteURL = fc.QuoteURL
	}
	if fc.RefreshInterval != "" {
		d, err := time.ParseDuration(fc.RefreshInterval)
		if err != nil {
			return fmt.Errorf("parse refresh_interval: %w", err)
		}
		c.RefreshInterval = d
	}
	if fc.Placeholder != "" {
		c.Placeholder = fc.Placeholder
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	return nil
}
