package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	HandshakeTimeoutSeconds int `yaml:"handshake_timeout_seconds"`
	ReadBufferSize          int `yaml:"read_buffer_size"`
	WriteBufferSize         int `yaml:"write_buffer_size"`
	SessionCleanupMinutes   int `yaml:"session_cleanup_minutes"`
}

func (sc ServerConfig) HandshakeTimeout() time.Duration {
	return time.Duration(sc.HandshakeTimeoutSeconds) * time.Second
}

func (sc ServerConfig) SessionCleanupInterval() time.Duration {
	return time.Duration(sc.SessionCleanupMinutes) * time.Minute
}

type GameConfig struct {
	DefaultRows int `yaml:"default_rows"`
	DefaultCols int `yaml:"default_cols"`

	// Dimension window offered by the presentation layer's
	// input widget; requests outside it are rejected at the
	// boundary before they ever reach the engine.
	MinDimension int `yaml:"min_dimension"`
	MaxDimension int `yaml:"max_dimension"`
}

func (gc GameConfig) DimensionInWindow(n int) bool {
	return n >= gc.MinDimension && n <= gc.MaxDimension
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Game   GameConfig   `yaml:"game"`
}

func Load(path string) (*Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(f, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate collects every problem in the loaded config so a bad
// deploy reports all of them at once instead of one per restart.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Server.HandshakeTimeoutSeconds <= 0 {
		result = multierror.Append(result, fmt.Errorf("server.handshake_timeout_seconds must be positive, got %d", c.Server.HandshakeTimeoutSeconds))
	}
	if c.Server.ReadBufferSize <= 0 {
		result = multierror.Append(result, fmt.Errorf("server.read_buffer_size must be positive, got %d", c.Server.ReadBufferSize))
	}
	if c.Server.WriteBufferSize <= 0 {
		result = multierror.Append(result, fmt.Errorf("server.write_buffer_size must be positive, got %d", c.Server.WriteBufferSize))
	}
	if c.Server.SessionCleanupMinutes <= 0 {
		result = multierror.Append(result, fmt.Errorf("server.session_cleanup_minutes must be positive, got %d", c.Server.SessionCleanupMinutes))
	}

	if c.Game.MinDimension <= 0 {
		result = multierror.Append(result, fmt.Errorf("game.min_dimension must be positive, got %d", c.Game.MinDimension))
	}
	if c.Game.MaxDimension < c.Game.MinDimension {
		result = multierror.Append(result, fmt.Errorf("game.max_dimension %d is smaller than game.min_dimension %d", c.Game.MaxDimension, c.Game.MinDimension))
	}
	if !c.Game.DimensionInWindow(c.Game.DefaultRows) {
		result = multierror.Append(result, fmt.Errorf("game.default_rows %d is outside [%d, %d]", c.Game.DefaultRows, c.Game.MinDimension, c.Game.MaxDimension))
	}
	if !c.Game.DimensionInWindow(c.Game.DefaultCols) {
		result = multierror.Append(result, fmt.Errorf("game.default_cols %d is outside [%d, %d]", c.Game.DefaultCols, c.Game.MinDimension, c.Game.MaxDimension))
	}

	return result.ErrorOrNil()
}
