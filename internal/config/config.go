// Package config loads process configuration from flags, environment,
// an optional config.yaml and built-in defaults, in that order of priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appName   = "dailyfloor"
	envPrefix = "DAILYFLOOR"
)

type Config struct {
	Database   DatabaseConfig   `mapstructure:"database"`
	Log        LogConfig        `mapstructure:"log"`
	Timezone   string           `mapstructure:"timezone"`
	Generation GenerationConfig `mapstructure:"generation"`
	History    HistoryConfig    `mapstructure:"history"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	File   string `mapstructure:"file"`
	Level  string `mapstructure:"level"`
	JSON   bool   `mapstructure:"json"`
	Stdout bool   `mapstructure:"stdout"`
}

type GenerationConfig struct {
	// IncludeBonus applies until a preference is saved in the app.
	IncludeBonus bool `mapstructure:"include_bonus"`
}

// HistoryConfig sets the trailing windows, in days, read from the store.
type HistoryConfig struct {
	FloorDays    int `mapstructure:"floor_days"`
	FeedbackDays int `mapstructure:"feedback_days"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"db":            "database.path",
	"log-file":      "log.file",
	"log-level":     "log.level",
	"log-json":      "log.json",
	"log-stdout":    "log.stdout",
	"timezone":      "timezone",
	"include-bonus": "generation.include_bonus",
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a config file (default <config dir>/dailyfloor/config.yaml)")
	fs.String("db", "", "path to the SQLite database")
	fs.String("log-file", "", "path to the rotated log file")
	fs.String("log-level", "info", "log level: trace, debug, info, warn, error")
	fs.Bool("log-json", false, "write logs as JSON")
	fs.Bool("log-stdout", false, "also write logs to stdout")
	fs.String("timezone", "Local", "IANA timezone deciding which day is today")
	fs.Bool("include-bonus", true, "add a bonus exercise to new floors")
}

// Dir returns <user config dir>/dailyfloor.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(base, appName), nil
}

// Load resolves the configuration. fs may be nil; flags registered with
// RegisterFlags override every other source only when set explicitly.
func Load(fs *pflag.FlagSet) (Config, error) {
	var cfg Config
	dir, err := Dir()
	if err != nil {
		return cfg, err
	}

	v := viper.New()
	v.SetDefault("database.path", filepath.Join(dir, appName+".db"))
	v.SetDefault("log.file", filepath.Join(dir, appName+".log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.stdout", false)
	v.SetDefault("timezone", "Local")
	v.SetDefault("generation.include_bonus", true)
	v.SetDefault("history.floor_days", 7)
	v.SetDefault("history.feedback_days", 7)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			explicit = f.Value.String()
		}
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return cfg, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Location resolves Timezone. Empty and "Local" mean the host timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
