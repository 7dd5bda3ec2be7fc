// Package config loads the lighthouse's [lighthouse] TOML configuration
// document via viper and derives the values the rest of the service needs
// (durations, the rotation window, the listen address).
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"wgpull-lighthouse/internal/state"
)

const (
	configFilename       = "wgpull.conf"
	systemConfigDir      = "/etc/wgpull"
	DefaultNodeTimeout   = 300
	DefaultRotationHours = 24 * time.Hour
)

// LighthouseConfig holds the [lighthouse] table, the only table in the
// document.
type LighthouseConfig struct {
	LighthouseKey              string `mapstructure:"lighthouse_key"`
	NodeKey                    string `mapstructure:"node_key"`
	BindHost                   string `mapstructure:"bindhost"`
	Port                       uint16 `mapstructure:"port"`
	KeyRotationIntervalSeconds uint64 `mapstructure:"key_rotation_interval_seconds"`
	KeyRotationTOD             [2]int `mapstructure:"key_rotation_tod"`
	NodeTimeoutSeconds         uint64 `mapstructure:"node_timeout_seconds"`
	StateFile                  string `mapstructure:"state_file"`
}

// LighthouseConfigFile is the on-disk document's top-level shape.
type LighthouseConfigFile struct {
	Lighthouse LighthouseConfig `mapstructure:"lighthouse"`
}

// ListenAddr returns "bindhost:port", the address the Gin router binds to.
func (c LighthouseConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.BindHost, c.Port)
}

// RotationInterval returns the configured rotation interval as a
// time.Duration.
func (c LighthouseConfig) RotationInterval() time.Duration {
	return time.Duration(c.KeyRotationIntervalSeconds) * time.Second
}

// RotationWindow returns the configured rotation time-of-day window.
func (c LighthouseConfig) RotationWindow() state.RotationWindow {
	return state.RotationWindow{MinHour: c.KeyRotationTOD[0], MaxHour: c.KeyRotationTOD[1]}
}

// NodeTimeout returns the configured node expiry timeout as a
// time.Duration.
func (c LighthouseConfig) NodeTimeout() time.Duration {
	return time.Duration(c.NodeTimeoutSeconds) * time.Second
}

// DiscoverConfigPath returns /etc/wgpull/wgpull.conf if it exists, else
// ./wgpull.conf if it exists in the current working directory. Returns an
// error if neither is present.
func DiscoverConfigPath() (string, error) {
	candidates := []string{
		filepath.Join(systemConfigDir, configFilename),
		filepath.Join(".", configFilename),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not find %s in any of: %v", configFilename, candidates)
}

// Load reads and parses the TOML document at path using viper.
func Load(path string) (*LighthouseConfigFile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		log.Printf("ERROR: failed to read configuration file %s: %v", path, err)
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var file LighthouseConfigFile
	if err := v.Unmarshal(&file); err != nil {
		log.Printf("ERROR: failed to parse configuration file %s: %v", path, err)
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg := &file.Lighthouse
	if cfg.LighthouseKey == "" {
		return nil, fmt.Errorf("lighthouse.lighthouse_key is required")
	}
	if cfg.NodeKey == "" {
		return nil, fmt.Errorf("lighthouse.node_key is required")
	}
	if cfg.StateFile == "" {
		return nil, fmt.Errorf("lighthouse.state_file is required")
	}
	if cfg.NodeTimeoutSeconds == 0 {
		log.Printf("WARNING: node_timeout_seconds is 0, using default %d", DefaultNodeTimeout)
		cfg.NodeTimeoutSeconds = DefaultNodeTimeout
	}
	if cfg.KeyRotationIntervalSeconds == 0 {
		log.Printf("WARNING: key_rotation_interval_seconds is 0, using default %s", DefaultRotationHours)
		cfg.KeyRotationIntervalSeconds = uint64(DefaultRotationHours / time.Second)
	}

	log.Printf("INFO: loaded lighthouse configuration from %s (listen=%s, state_file=%s)", path, cfg.ListenAddr(), cfg.StateFile)
	return &file, nil
}
