// File: internal/config/config.go
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger" yaml:"logger"`
	Window WindowConfig `mapstructure:"window" yaml:"window"`
}

// WindowConfig describes the browser window the layout pass targets.
// Width and height are CSS pixels; the scale factor maps CSS pixels to
// device pixels, 2.0 on a typical HiDPI display.
type WindowConfig struct {
	Width       float64 `mapstructure:"width" yaml:"width"`
	Height      float64 `mapstructure:"height" yaml:"height"`
	ScaleFactor float64 `mapstructure:"scale_factor" yaml:"scale_factor"`
}

// Validate rejects window geometry the layout pass cannot work with.
func (w WindowConfig) Validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("window dimensions must be positive, got %gx%g", w.Width, w.Height)
	}
	if w.ScaleFactor <= 0 {
		return fmt.Errorf("scale factor must be positive, got %g", w.ScaleFactor)
	}
	return nil
}

// LoggerConfig holds all the configuration for the logger.
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

// ColorConfig defines the color names for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "kosmonaut")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "red")

	// Window defaults match a common laptop viewport at 1x scale.
	v.SetDefault("window.width", 1920.0)
	v.SetDefault("window.height", 1080.0)
	v.SetDefault("window.scale_factor", 1.0)
}

// NewDefaultConfig returns a Config populated with the defaults only, for
// tests and for callers that do not read a config file.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Defaults always unmarshal into the struct they were written for.
		panic(fmt.Sprintf("config: defaults do not unmarshal: %v", err))
	}
	return &cfg
}
