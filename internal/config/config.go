package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/dragshell/internal/logging"
)

const (
	DefaultLogLevel        = "info"
	DefaultLogMaxSizeMB    = 10
	DefaultLogMaxFiles     = 3
	DefaultRefreshInterval = 5 * time.Second
	DefaultCancelDragKey   = "Mod4-Escape"

	// HotkeyDisabled turns a hotkey binding off.
	HotkeyDisabled = "none"
)

// LoggingConfig configures daemon logging.
type LoggingConfig struct {
	// Level controls logging verbosity: debug, info, warn, error
	Level string `yaml:"level,omitempty"`
	// File is the log file path; empty logs to stderr
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the maximum log file size before rotation (default: 10)
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files,omitempty"`
}

// TargetsConfig controls how sidebar drop targets are built.
type TargetsConfig struct {
	// RefreshInterval is how often targets are rebuilt from the backend.
	RefreshInterval Duration `yaml:"refresh_interval,omitempty"`
	// Outputs restricts sidebar entries to these output names. Empty means all.
	Outputs []string `yaml:"outputs,omitempty"`
}

// IPCConfig configures the daemon socket.
type IPCConfig struct {
	// Socket overrides the default socket path under the runtime dir.
	Socket string `yaml:"socket,omitempty"`
}

// HotkeysConfig configures global key bindings grabbed by the daemon.
type HotkeysConfig struct {
	// CancelDrag aborts the active drag, in xgbutil keybind syntax ("none" disables).
	CancelDrag string `yaml:"cancel_drag,omitempty"`
}

// Config is the effective daemon configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Targets TargetsConfig `yaml:"targets"`
	IPC     IPCConfig     `yaml:"ipc"`
	Hotkeys HotkeysConfig `yaml:"hotkeys"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:     DefaultLogLevel,
			MaxSizeMB: DefaultLogMaxSizeMB,
			MaxFiles:  DefaultLogMaxFiles,
		},
		Targets: TargetsConfig{
			RefreshInterval: Duration(DefaultRefreshInterval),
		},
		Hotkeys: HotkeysConfig{
			CancelDrag: DefaultCancelDragKey,
		},
	}
}

// applyDefaults fills zero values left by a partial file.
func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = DefaultLogMaxSizeMB
	}
	if c.Logging.MaxFiles == 0 {
		c.Logging.MaxFiles = DefaultLogMaxFiles
	}
	if c.Targets.RefreshInterval == 0 {
		c.Targets.RefreshInterval = Duration(DefaultRefreshInterval)
	}
	if c.Hotkeys.CancelDrag == "" {
		c.Hotkeys.CancelDrag = DefaultCancelDragKey
	}
}

// ValidationError reports an invalid config value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the config for values the daemon cannot run with.
func (c *Config) Validate() error {
	if _, ok := logging.LookupLevel(c.Logging.Level); !ok {
		return &ValidationError{Field: "logging.level", Message: fmt.Sprintf("unknown level %q (want debug, info, warn or error)", c.Logging.Level)}
	}
	if c.Logging.MaxSizeMB < 0 {
		return &ValidationError{Field: "logging.max_size_mb", Message: "must be >= 0"}
	}
	if c.Logging.MaxFiles < 0 {
		return &ValidationError{Field: "logging.max_files", Message: "must be >= 0"}
	}
	if c.Targets.RefreshInterval.Std() < 100*time.Millisecond {
		return &ValidationError{Field: "targets.refresh_interval", Message: "must be at least 100ms"}
	}
	seen := make(map[string]bool, len(c.Targets.Outputs))
	for _, name := range c.Targets.Outputs {
		name = strings.TrimSpace(name)
		if name == "" {
			return &ValidationError{Field: "targets.outputs", Message: "output names must not be empty"}
		}
		if seen[name] {
			return &ValidationError{Field: "targets.outputs", Message: fmt.Sprintf("duplicate output %q", name)}
		}
		seen[name] = true
	}
	if strings.TrimSpace(c.Hotkeys.CancelDrag) != c.Hotkeys.CancelDrag {
		return &ValidationError{Field: "hotkeys.cancel_drag", Message: "must not have surrounding whitespace"}
	}
	return nil
}

// CancelDragHotkey returns the cancel binding and whether it is enabled.
func (c *Config) CancelDragHotkey() (string, bool) {
	key := c.Hotkeys.CancelDrag
	if key == "" || strings.EqualFold(key, HotkeyDisabled) {
		return "", false
	}
	return key, true
}

// LoggingOptions converts the logging section for the logging package.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{
		Level:     c.Logging.Level,
		File:      c.Logging.File,
		MaxSizeMB: c.Logging.MaxSizeMB,
		MaxFiles:  c.Logging.MaxFiles,
	}
}

// Duration is a time.Duration written as a Go duration string in YAML.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}
