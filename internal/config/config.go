// Package config holds the dashboard configuration and its viper loader.
package config

import (
	"fmt"
	"time"

	apperrors "gdpdash/internal/errors"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Data      DataConfig      `mapstructure:"data"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	Debug           bool          `mapstructure:"debug"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DataConfig points at the wide-format GDP per capita CSV.
type DataConfig struct {
	Path string `mapstructure:"path"`
}

// DashboardConfig carries the page and chart text plus control defaults.
type DashboardConfig struct {
	Heading          string   `mapstructure:"heading"`
	Description      string   `mapstructure:"description"`
	ChartTitle       string   `mapstructure:"chart_title"`
	XAxisTitle       string   `mapstructure:"x_axis_title"`
	YAxisTitle       string   `mapstructure:"y_axis_title"`
	DefaultCountries []string `mapstructure:"default_countries"`
	MarkStep         int      `mapstructure:"mark_step"`
	ChartWidth       int      `mapstructure:"chart_width"`
	ChartHeight      int      `mapstructure:"chart_height"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return apperrors.NewInvalidConfigError("data.path is required")
	}
	if c.Server.Address == "" {
		return apperrors.NewInvalidConfigError("server.address is required")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return apperrors.NewInvalidConfigError("server timeouts must be positive")
	}
	if c.Dashboard.MarkStep <= 0 {
		return apperrors.NewInvalidConfigError(fmt.Sprintf("dashboard.mark_step must be positive, got %d", c.Dashboard.MarkStep))
	}
	if c.Dashboard.ChartWidth <= 0 || c.Dashboard.ChartHeight <= 0 {
		return apperrors.NewInvalidConfigError("dashboard chart size must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return apperrors.NewInvalidConfigError(fmt.Sprintf("unknown logging.level %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return apperrors.NewInvalidConfigError(fmt.Sprintf("unknown logging.format %q", c.Logging.Format))
	}
	return nil
}
