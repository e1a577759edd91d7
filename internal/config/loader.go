package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "GDPDASH"

	// DefaultConfigName is looked up in DefaultSearchPaths when no file is given.
	DefaultConfigName = "config"
)

// DefaultSearchPaths are the directories searched for config.yaml.
var DefaultSearchPaths = []string{"./configs", "."}

// Loader handles loading configuration from files, environment and flags.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader with defaults registered.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return &Loader{v: v}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "gdpdash")
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.address", ":8050")
	v.SetDefault("server.debug", false)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("data.path", "gdp_pcap.csv")

	v.SetDefault("dashboard.heading", "GDP Per Capita Graphing Tool")
	v.SetDefault("dashboard.description", "This interactive app displays the GDP per capita for various selected countries over the selected years. Each country is represented by a unique color. The data for this graphing tool comes from the Gapminder Dataset.")
	v.SetDefault("dashboard.chart_title", "Average GDP Per Capita by Decade")
	v.SetDefault("dashboard.x_axis_title", "Year")
	v.SetDefault("dashboard.y_axis_title", "Average GDP Per Capita")
	v.SetDefault("dashboard.default_countries", []string{"Afghanistan"})
	v.SetDefault("dashboard.mark_step", 20)
	v.SetDefault("dashboard.chart_width", 1100)
	v.SetDefault("dashboard.chart_height", 500)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// BindFlag lets a command-line flag override the config key.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("flag for %q is nil", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Load reads the config file (if any), merges env and flags, and validates.
// An explicit path must exist; with an empty path the default search paths
// are tried and a missing file is not an error.
func (l *Loader) Load(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, &LoadError{Path: path, Message: "config file not found", Err: err}
		}
		l.v.SetConfigFile(path)
	} else {
		l.v.SetConfigName(DefaultConfigName)
		for _, p := range DefaultSearchPaths {
			l.v.AddConfigPath(p)
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, &LoadError{Path: path, Message: "failed to read config file", Err: err}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, &LoadError{Path: l.v.ConfigFileUsed(), Message: "failed to parse config file", Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Path: l.v.ConfigFileUsed(), Message: "configuration validation failed", Err: err}
	}
	return &cfg, nil
}

// ConfigFileUsed reports the file the last Load read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// LoadError describes a failure to produce a usable Config.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("config %s: %s: %v", e.Path, e.Message, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
