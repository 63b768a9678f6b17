// Package config provides configuration for the occurrence engine,
// loaded from TOML files and OCCUR_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/dshills/occur/internal/engine/pattern"
)

// ErrInvalidConfig wraps validation failures.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the engine configuration.
type Config struct {
	Match    MatchConfig    `toml:"match"`
	Navigate NavigateConfig `toml:"navigate"`
	Operator OperatorConfig `toml:"operator"`
	Logging  LoggingConfig  `toml:"logging"`
}

// MatchConfig configures pattern matching.
type MatchConfig struct {
	// TieBreak selects the winner for same-start multi-pattern
	// matches: "insertion" (default) or "longest".
	TieBreak string `toml:"tiebreak"`
}

// NavigateConfig configures cursor navigation.
type NavigateConfig struct {
	// Wrap enables wraparound when navigation exhausts a direction.
	Wrap bool `toml:"wrap"`
}

// OperatorConfig configures operator application.
type OperatorConfig struct {
	// IndentWidth is the indent unit in spaces; 0 selects tabs.
	IndentWidth int `toml:"indent_width"`
	// Register is the default register name.
	Register string `toml:"register"`
}

// LoggingConfig configures engine logging.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Match:    MatchConfig{TieBreak: "insertion"},
		Navigate: NavigateConfig{Wrap: true},
		Operator: OperatorConfig{IndentWidth: 4, Register: `"`},
		Logging:  LoggingConfig{Level: "info"},
	}
}

// LoadFile loads configuration from a TOML file, layered over the
// defaults. A missing file yields the defaults without error.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	switch c.Match.TieBreak {
	case "insertion", "longest":
	default:
		return fmt.Errorf("%w: match.tiebreak %q (want insertion or longest)", ErrInvalidConfig, c.Match.TieBreak)
	}
	if c.Operator.IndentWidth < 0 {
		return fmt.Errorf("%w: operator.indent_width %d", ErrInvalidConfig, c.Operator.IndentWidth)
	}
	return nil
}

// TieBreak returns the configured tie-break rule.
func (c Config) TieBreak() pattern.TieBreak {
	if c.Match.TieBreak == "longest" {
		return pattern.TieLongest
	}
	return pattern.TieInsertion
}

// ApplyEnv overlays OCCUR_* environment variables onto the
// configuration. Unset variables leave the current values.
func ApplyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("OCCUR_TIEBREAK"); ok {
		cfg.Match.TieBreak = v
	}
	if v, ok := os.LookupEnv("OCCUR_WRAP"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Navigate.Wrap = b
		}
	}
	if v, ok := os.LookupEnv("OCCUR_INDENT_WIDTH"); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Operator.IndentWidth = n
		}
	}
	if v, ok := os.LookupEnv("OCCUR_LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
}
