package app

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

const (
	defaultAuthURL    = "http://127.0.0.1:8080"
	defaultTimeout    = 15 * time.Second
	defaultConfigFile = "config.yaml"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home    string        `yaml:"-"`        // config directory, e.g. $HOME/.signin
	AuthURL string        `yaml:"auth_url"` // authentication server base URL
	Timeout time.Duration `yaml:"timeout"`  // per-attempt login deadline
	Store   StoreConfig   `yaml:"store"`

	// Passphrase seals the file store when set. Never read from the file.
	Passphrase string       `yaml:"-"`
	HTTP       *http.Client `yaml:"-"` // optional; defaults to a client with Timeout
}

// StoreConfig selects and configures the credential store.
type StoreConfig struct {
	Backend string      `yaml:"backend"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig(home string) Config {
	return Config{
		Home:    home,
		AuthURL: defaultAuthURL,
		Timeout: defaultTimeout,
		Store: StoreConfig{
			Backend: BackendFile,
			Redis:   RedisConfig{Addr: "127.0.0.1:6379"},
		},
	}
}

// ConfigPath returns the default config file location under home.
func ConfigPath(home string) string { return filepath.Join(home, defaultConfigFile) }

// LoadConfig reads path over DefaultConfig(home). A missing file yields the
// defaults.
func LoadConfig(home, path string) (Config, error) {
	cfg := DefaultConfig(home)
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.AuthURL)
	if err != nil {
		return fmt.Errorf("auth_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("auth_url %q must be an http or https URL", c.AuthURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch c.Store.Backend {
	case BackendFile:
		if c.Home == "" {
			return errors.New("file store requires a home directory")
		}
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return errors.New("store.redis.addr is required for the redis backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q (want %s, %s or %s)",
			c.Store.Backend, BackendFile, BackendRedis, BackendMemory)
	}
	return nil
}
