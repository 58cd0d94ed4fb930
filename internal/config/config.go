// Package config loads the optional progressive.yaml configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/progressit/progressive/pkg/jsonfmt"
	"github.com/progressit/progressive/pkg/uithread"
)

// FileName is the configuration file looked up in a directory.
const FileName = "progressive.yaml"

// SchemaMajor is the configuration schema major version this build reads.
const SchemaMajor = "v1"

// DefaultDebugAddr is the debug server address used when none is configured.
const DefaultDebugAddr = "127.0.0.1:7070"

// Config represents progressive.yaml.
type Config struct {
	Version  string         `yaml:"version,omitempty"`
	Log      LogConfig      `yaml:"log"`
	Debug    DebugConfig    `yaml:"debug"`
	Format   FormatConfig   `yaml:"format"`
	Executor ExecutorConfig `yaml:"executor"`
}

// LogConfig selects the log level (debug, info, warn, error) and format
// (text or json).
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// DebugConfig configures the diagnostics server. Enabled defaults to true;
// setting it to false makes the debug command refuse to start.
type DebugConfig struct {
	Addr    string `yaml:"addr,omitempty"`
	Enabled *bool  `yaml:"enabled,omitempty"`
}

// FormatConfig holds the formatter defaults. Unset fields default to true.
type FormatConfig struct {
	PrettyPrint    *bool `yaml:"prettyPrint,omitempty"`
	SerializeNulls *bool `yaml:"serializeNulls,omitempty"`
}

// ExecutorConfig configures the UI thread.
type ExecutorConfig struct {
	QueueSize int `yaml:"queueSize,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Path         string
	Version      string
	LogLevel     slog.Level
	LogFormat    string
	DebugAddr    string
	DebugEnabled bool
	Format       jsonfmt.Options
	QueueSize    int
}

// LoadOptional reads progressive.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads progressive.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(filepath.Join(dir, FileName))
}

// Resolve validates cfg and fills in defaults. path is informational.
func (cfg *Config) Resolve(path string) (*Resolved, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		version = SchemaMajor
	}
	if err := validateVersion(version); err != nil {
		return nil, err
	}

	level, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	logFormat := strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	switch logFormat {
	case "":
		logFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("log.format must be text or json (got %q)", cfg.Log.Format)
	}

	debugAddr := strings.TrimSpace(cfg.Debug.Addr)
	if debugAddr == "" {
		debugAddr = DefaultDebugAddr
	}

	queueSize := cfg.Executor.QueueSize
	if queueSize < 0 {
		return nil, fmt.Errorf("executor.queueSize cannot be negative (got %d)", queueSize)
	}
	if queueSize == 0 {
		queueSize = uithread.DefaultQueueSize
	}

	debugEnabled := true
	if cfg.Debug.Enabled != nil {
		debugEnabled = *cfg.Debug.Enabled
	}

	format := jsonfmt.DefaultOptions()
	if cfg.Format.PrettyPrint != nil {
		format.PrettyPrint = *cfg.Format.PrettyPrint
	}
	if cfg.Format.SerializeNulls != nil {
		format.SerializeNulls = *cfg.Format.SerializeNulls
	}

	return &Resolved{
		Path:         path,
		Version:      version,
		LogLevel:     level,
		LogFormat:    logFormat,
		DebugAddr:    debugAddr,
		DebugEnabled: debugEnabled,
		Format:       format,
		QueueSize:    queueSize,
	}, nil
}

func validateVersion(version string) error {
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return fmt.Errorf("version must be a semantic version (got %q)", version)
	}
	if major := semver.Major(version); major != SchemaMajor {
		return fmt.Errorf("unsupported config version %s (this build reads %s)", major, SchemaMajor)
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
