// File: internal/config/config.go
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Engine() EngineConfig
	Report() ReportConfig

	// Engine setters, used by CLI flag overrides.
	SetEngineLayerTimeout(d time.Duration)
	SetEngineMaxInputBytes(n int)
	SetEngineFileConcurrency(n int)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg LoggerConfig `mapstructure:"logger" yaml:"logger"`
	EngineCfg EngineConfig `mapstructure:"engine" yaml:"engine"`
	ReportCfg ReportConfig `mapstructure:"report" yaml:"report"`
}

// LoggerConfig mirrors the observability package's needs.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// EngineConfig tunes the transformation pipeline itself.
type EngineConfig struct {
	// LayerTimeout bounds a single layer's transform. A layer that does not
	// return within this window is reverted with reason "timeout".
	LayerTimeout time.Duration `mapstructure:"layer_timeout" yaml:"layer_timeout"`
	// MaxInputBytes is the hard input ceiling. Larger inputs are rejected
	// before any layer runs, never truncated.
	MaxInputBytes int `mapstructure:"max_input_bytes" yaml:"max_input_bytes"`
	// FileConcurrency bounds how many independent files the CLI transforms
	// in flight. Layers within one file always run sequentially.
	FileConcurrency int `mapstructure:"file_concurrency" yaml:"file_concurrency"`
}

// ReportConfig selects where and how run reports are emitted.
type ReportConfig struct {
	Output string `mapstructure:"output" yaml:"output"`
	Format string `mapstructure:"format" yaml:"format"`
}

// -- Interface implementations --

func (c *Config) Logger() LoggerConfig { return c.LoggerCfg }
func (c *Config) Engine() EngineConfig { return c.EngineCfg }
func (c *Config) Report() ReportConfig { return c.ReportCfg }

func (c *Config) SetEngineLayerTimeout(d time.Duration) { c.EngineCfg.LayerTimeout = d }
func (c *Config) SetEngineMaxInputBytes(n int)          { c.EngineCfg.MaxInputBytes = n }
func (c *Config) SetEngineFileConcurrency(n int)        { c.EngineCfg.FileConcurrency = n }

// NewDefaultConfig creates a configuration struct populated with defaults.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Defaults are static; failing to unmarshal them is a programming error.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "layerforge")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "red")

	// -- Engine --
	v.SetDefault("engine.layer_timeout", 10*time.Second)
	v.SetDefault("engine.max_input_bytes", 1_000_000)
	v.SetDefault("engine.file_concurrency", 4)

	// -- Report --
	v.SetDefault("report.output", "")
	v.SetDefault("report.format", "json")
}

// NewConfigFromViper creates a configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.EngineCfg.LayerTimeout <= 0 {
		return fmt.Errorf("engine.layer_timeout must be a positive duration")
	}
	if c.EngineCfg.MaxInputBytes <= 0 {
		return fmt.Errorf("engine.max_input_bytes must be a positive integer")
	}
	if c.EngineCfg.FileConcurrency <= 0 {
		return fmt.Errorf("engine.file_concurrency must be a positive integer")
	}
	switch c.ReportCfg.Format {
	case "", "json":
	default:
		return fmt.Errorf("report.format %q is not supported", c.ReportCfg.Format)
	}
	return nil
}
