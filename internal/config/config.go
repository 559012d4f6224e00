// Package config handles configuration for pawsitive.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apperrors "github.com/diogo/pawsitive/internal/errors"
)

// Environment variables read by pawsitive
const (
	EnvHome      = "PAWSITIVE_HOME"
	EnvTheme     = "PAWSITIVE_THEME"
	EnvLogLevel  = "PAWSITIVE_LOG_LEVEL"
	EnvGlamStyle = "GLAMOUR_STYLE"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// LogConfig configures the rotating log file
type LogConfig struct {
	Level      string `json:"level"` // debug, info, warn, error
	File       string `json:"file,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

// Config represents the user configuration
type Config struct {
	TUITheme        string `json:"tui_theme,omitempty"`
	CompanionName   string `json:"companion_name,omitempty"`
	CopyToClipboard bool   `json:"copy_to_clipboard"`
	// TypingDelayMs is how long Buddy "types" before a reply appears.
	TypingDelayMs int `json:"typing_delay_ms"`
	// FrameIntervalMs drives the character animation (breathing, tail wag).
	FrameIntervalMs int            `json:"frame_interval_ms"`
	TipsFile        string         `json:"tips_file,omitempty"`
	ProgressFile    string         `json:"progress_file,omitempty"`
	TranscriptDir   string         `json:"transcript_dir,omitempty"`
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
	Log             LogConfig      `json:"log"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultLogConfig returns the default log configuration
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:      "info",
		MaxSizeMB:  5,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		TUITheme:        "pawsitive",
		CompanionName:   "Buddy",
		CopyToClipboard: false,
		TypingDelayMs:   1500,
		FrameIntervalMs: 50,
		Markdown:        DefaultMarkdownConfig(),
		Log:             DefaultLogConfig(),
	}
}

// TypingDelay returns the reply delay as a duration
func (c Config) TypingDelay() time.Duration {
	if c.TypingDelayMs < 0 {
		return 0
	}
	return time.Duration(c.TypingDelayMs) * time.Millisecond
}

// FrameInterval returns the animation frame interval, never below 16ms
func (c Config) FrameInterval() time.Duration {
	if c.FrameIntervalMs < 16 {
		return 16 * time.Millisecond
	}
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".pawsitive"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// transcripts and logs live here
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// GetLogPath returns the log file from config, defaulting to pawsitive.log in the config dir
func GetLogPath(cfg Config) (string, error) {
	if cfg.Log.File != "" {
		return cfg.Log.File, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "pawsitive.log"), nil
}

// GetTranscriptDir returns the transcript directory from config, creating it if necessary
func GetTranscriptDir(cfg Config) (string, error) {
	dir := cfg.TranscriptDir
	if dir == "" {
		configDir, err := GetConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(configDir, "transcripts")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create transcript directory: %w", err)
	}

	return dir, nil
}

// LoadDotEnv loads .env files into the environment. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides config values from the environment
func ApplyEnv(cfg Config) Config {
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.TUITheme = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvGlamStyle); v != "" {
		cfg.Markdown.Style = v
	}
	return cfg
}

// LoadConfig loads the configuration from disk and applies environment overrides
func LoadConfig() (Config, error) {
	cfg, err := LoadConfigFile()
	return ApplyEnv(cfg), err
}

// LoadConfigFile loads the configuration from disk without environment
// overrides, so it can be edited and saved back. Defaults are returned
// alongside any error.
func LoadConfigFile() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), apperrors.NewParseError(err.Error(), configPath)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// setters maps the keys accepted by `config set` to their field updates
var setters = map[string]func(*Config, string) error{
	"tui_theme":      func(c *Config, v string) error { c.TUITheme = v; return nil },
	"companion_name": func(c *Config, v string) error { c.CompanionName = v; return nil },
	"copy_to_clipboard": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return apperrors.NewValidationError("copy_to_clipboard", "expected true or false")
		}
		c.CopyToClipboard = b
		return nil
	},
	"typing_delay_ms": func(c *Config, v string) error {
		return setNonNegative(&c.TypingDelayMs, "typing_delay_ms", v)
	},
	"frame_interval_ms": func(c *Config, v string) error {
		return setNonNegative(&c.FrameIntervalMs, "frame_interval_ms", v)
	},
	"tips_file":      func(c *Config, v string) error { c.TipsFile = v; return nil },
	"progress_file":  func(c *Config, v string) error { c.ProgressFile = v; return nil },
	"transcript_dir": func(c *Config, v string) error { c.TranscriptDir = v; return nil },
	"markdown.style": func(c *Config, v string) error { c.Markdown.Style = v; return nil },
	"log.level": func(c *Config, v string) error {
		switch strings.ToLower(v) {
		case "debug", "info", "warn", "error":
			c.Log.Level = strings.ToLower(v)
			return nil
		}
		return apperrors.NewValidationError("log.level", "expected debug, info, warn or error")
	},
	"log.file": func(c *Config, v string) error { c.Log.File = v; return nil },
}

func setNonNegative(dst *int, field, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return apperrors.NewValidationError(field, "expected a non-negative integer")
	}
	*dst = n
	return nil
}

// Keys returns the settable keys in sorted order
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set updates one key of cfg from its string form
func Set(cfg *Config, key, value string) error {
	set, ok := setters[key]
	if !ok {
		return apperrors.NewValidationError("key", fmt.Sprintf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", ")))
	}
	return set(cfg, value)
}
