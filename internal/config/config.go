// Package config loads the YAML configuration of the ssbkeys command.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/scuttlekit/ssbkeys/internal/logging"
)

// Environment variables read by ApplyEnv.
const (
	EnvConfig = "SSB_KEYS_CONFIG"
	EnvSecret = "SSB_KEYS_SECRET"
)

// Keystore backends.
const (
	BackendMemory  = "memory"
	BackendLevelDB = "leveldb"
	BackendBadger  = "badger"
)

// Config is the command's configuration.
type Config struct {
	// Secret is the path of the secret file used when no other key source
	// is given.
	Secret   string         `yaml:"secret"`
	Keystore KeystoreConfig `yaml:"keystore"`
	Logger   logging.Config `yaml:"logger"`
}

// KeystoreConfig selects where named identities are kept. An empty Path
// puts the store in a "keystore" directory next to the secret file.
type KeystoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path,omitempty"`
}

// DefaultKeystoreDir is the keystore directory used when no path is set.
const DefaultKeystoreDir = "keystore"

// Default returns the configuration used when no file is given. The secret
// lives in ~/.ssb/secret, as other feed software expects, and named
// identities in a leveldb store at ~/.ssb/keystore.
func Default() *Config {
	secret := filepath.Join(".ssb", "secret")
	if home, err := os.UserHomeDir(); err == nil {
		secret = filepath.Join(home, secret)
	}
	return &Config{
		Secret:   secret,
		Keystore: KeystoreConfig{Backend: BackendLevelDB},
		Logger:   logging.Config{Environment: logging.Production},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvSecret); v != "" {
		c.Secret = v
	}
}

// KeystorePath returns the directory of an on-disk keystore.
func (c *Config) KeystorePath() string {
	if c.Keystore.Path != "" {
		return c.Keystore.Path
	}
	return filepath.Join(filepath.Dir(c.Secret), DefaultKeystoreDir)
}

// Validate checks field combinations.
func (c *Config) Validate() error {
	switch c.Keystore.Backend {
	case BackendMemory, BackendLevelDB, BackendBadger:
	default:
		return fmt.Errorf("unknown keystore backend %q", c.Keystore.Backend)
	}
	return nil
}
