package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API     APIConfig     `yaml:"api"`
	Payment PaymentConfig `yaml:"payment"`
	OAuth   OAuthConfig   `yaml:"oauth"`
	Session SessionConfig `yaml:"session"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (a APIConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

type PaymentConfig struct {
	PublishableKey string `yaml:"publishable_key"`
}

type OAuthConfig struct {
	GoogleClientID string `yaml:"google_client_id"`
}

type SessionConfig struct {
	File  string      `yaml:"file"`
	Redis RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Path returns the session file location, defaulting under the user home.
func (s SessionConfig) Path() string {
	if s.File != "" {
		return s.File
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hotelbook/session.json"
	}
	return filepath.Join(home, ".hotelbook", "session.json")
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	return &cfg, nil
}

// Default returns a config built purely from environment values, for running
// without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyEnv()
	return cfg
}

// Environment values win over the file so deployments can swap the build-time
// keys without editing yaml.
func (c *Config) applyEnv() {
	if v := os.Getenv("API_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("STRIPE_PUBLISHABLE_KEY"); v != "" {
		c.Payment.PublishableKey = v
	}
	if v := os.Getenv("GOOGLE_CLIENT_ID"); v != "" {
		c.OAuth.GoogleClientID = v
	}
	if v := os.Getenv("SESSION_FILE"); v != "" {
		c.Session.File = v
	}
	if v := os.Getenv("SESSION_REDIS_ADDR"); v != "" {
		c.Session.Redis.Addr = v
	}
}
