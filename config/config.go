// Package config resolves runtime settings from defaults, a TOML file, the environment and flags
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/boxterm/terminal"
)

// Environment variables, highest precedence after flags
const (
	EnvConfig      = "BOXTERM_CONFIG"
	EnvTabStop     = "BOXTERM_TAB_STOP"
	EnvColor       = "BOXTERM_COLOR"
	EnvEscapeDelay = "BOXTERM_ESCAPE_DELAY"
	EnvDebug       = "BOXTERM_DEBUG"
)

// Config holds resolved settings
type Config struct {
	TabStop     int
	ColorMode   string        // "auto", "256" or "truecolor"
	EscapeDelay time.Duration // Idle time before a lone ESC is reported as the escape key
	Debug       bool
	LogDir      string
	Path        string // TOML file consulted, empty if none
}

// fileConfig mirrors the TOML layout; nil fields were absent from the file
type fileConfig struct {
	TabStop     *int    `toml:"tab_stop"`
	Color       *string `toml:"color"`
	EscapeDelay *string `toml:"escape_delay"`
	Debug       *bool   `toml:"debug"`
	LogDir      *string `toml:"log_dir"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		TabStop:     4,
		ColorMode:   "auto",
		EscapeDelay: 50 * time.Millisecond,
		LogDir:      "logs",
	}
}

// Load resolves settings: defaults, then the TOML file, then environment, then flags in args
// The file comes from -config or $BOXTERM_CONFIG; a missing file is not an error
func Load(args []string) (*Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet("boxterm", flag.ContinueOnError)
	path := fs.String("config", "", "Path to TOML config file")
	tabStop := fs.Int("tab-stop", cfg.TabStop, "Tab width in cells")
	color := fs.String("color", cfg.ColorMode, "Color mode: auto, truecolor, 256")
	escapeDelay := fs.Duration("escape-delay", cfg.EscapeDelay, "Idle time before a lone ESC is the escape key")
	debug := fs.Bool("debug", cfg.Debug, "Write debug log to the log directory")
	logDir := fs.String("log-dir", cfg.LogDir, "Directory for debug logs")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Path = *path
	if cfg.Path == "" {
		cfg.Path = os.Getenv(EnvConfig)
	}
	if cfg.Path != "" {
		if err := cfg.loadFile(cfg.Path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	// Only flags given on the command line override earlier sources
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tab-stop":
			cfg.TabStop = *tabStop
		case "color":
			cfg.ColorMode = *color
		case "escape-delay":
			cfg.EscapeDelay = *escapeDelay
		case "debug":
			cfg.Debug = *debug
		case "log-dir":
			cfg.LogDir = *logDir
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.Path = ""
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return c.decode(path, data)
}

func (c *Config) decode(source string, data []byte) error {
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config %s: %w", source, err)
	}

	if fc.TabStop != nil {
		c.TabStop = *fc.TabStop
	}
	if fc.Color != nil {
		c.ColorMode = *fc.Color
	}
	if fc.EscapeDelay != nil {
		d, err := time.ParseDuration(*fc.EscapeDelay)
		if err != nil {
			return fmt.Errorf("parsing config %s: escape_delay: %w", source, err)
		}
		c.EscapeDelay = d
	}
	if fc.Debug != nil {
		c.Debug = *fc.Debug
	}
	if fc.LogDir != nil {
		c.LogDir = *fc.LogDir
	}
	return nil
}

func (c *Config) loadEnv() error {
	if v, ok := os.LookupEnv(EnvTabStop); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTabStop, err)
		}
		c.TabStop = n
	}
	if v, ok := os.LookupEnv(EnvColor); ok {
		c.ColorMode = v
	}
	if v, ok := os.LookupEnv(EnvEscapeDelay); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvEscapeDelay, err)
		}
		c.EscapeDelay = d
	}
	if v, ok := os.LookupEnv(EnvDebug); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Debug = b
	}
	return nil
}

// Validate rejects settings the renderer or session cannot use
func (c *Config) Validate() error {
	if c.TabStop < 1 {
		return fmt.Errorf("tab stop must be at least 1, got %d", c.TabStop)
	}
	if _, ok := terminal.ParseColorMode(c.ColorMode); !ok {
		return fmt.Errorf("unknown color mode %q", c.ColorMode)
	}
	if c.EscapeDelay <= 0 {
		return fmt.Errorf("escape delay must be positive, got %v", c.EscapeDelay)
	}
	return nil
}

// Mode returns the color mode, detecting from the environment for "auto"
func (c *Config) Mode() terminal.ColorMode {
	mode, _ := terminal.ParseColorMode(c.ColorMode)
	return mode
}
