package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ttpr0/netex-routing/timetable"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

// Reads file over the defaults. The result is not validated, flags may still override it.
func ReadConfig(file string) (Config, error) {
	slog.Info("Reading config file", "file", file)
	config := DefaultConfig()
	data, err := os.ReadFile(file)
	if err != nil {
		return config, fmt.Errorf("reading config %v: %w", file, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing config %v: %w", file, err)
	}
	return config, nil
}

func DefaultConfig() Config {
	config := Config{}
	config.Source.Cache = "cache.bin"
	config.Routing.DepartAfter = "00:00:00"
	config.Routing.MaxRange = 172800
	config.Routing.Workers = 4
	config.Server.Port = 5002
	config.Log.Level = "info"
	return config
}

type Config struct {
	Source  SourceOptions  `yaml:"source"`
	Routing RoutingOptions `yaml:"routing"`
	Server  struct {
		Port int `yaml:"port" validate:"gte=1,lte=65535"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level" validate:"oneof=debug info warn error"`
	} `yaml:"log"`
}

type SourceOptions struct {
	// directory of NeTEx xml files
	Netex           string `yaml:"netex" validate:"required"`
	Cache           string `yaml:"cache"`
	InvalidateCache bool   `yaml:"invalidate-cache"`
}

type RoutingOptions struct {
	Date        string `yaml:"date"`
	DepartAfter string `yaml:"depart-after"`
	MaxRange    int32  `yaml:"max-range" validate:"gt=0"`
	Workers     int    `yaml:"workers" validate:"gte=1,lte=256"`
}

var config_validator = validator.New()

func (self *Config) Validate() error {
	if err := config_validator.Struct(self); err != nil {
		return err
	}
	if self.Routing.Date != "" {
		if _, err := timetable.ParseDate(self.Routing.Date); err != nil {
			return fmt.Errorf("routing.date: %w", err)
		}
	}
	if _, err := timetable.ParseTimeOfDay(self.Routing.DepartAfter); err != nil {
		return fmt.Errorf("routing.depart-after: %w", err)
	}
	return nil
}

// Returns the path of the feed cache, empty if caching is disabled.
func (self *Config) CachePath() string {
	if self.Source.Cache == "" {
		return ""
	}
	if filepath.IsAbs(self.Source.Cache) {
		return self.Source.Cache
	}
	return filepath.Join(self.Source.Netex, self.Source.Cache)
}

// Returns the configured routing date, today if none is set.
func (self *Config) RoutingDate() time.Time {
	if self.Routing.Date == "" {
		return timetable.TruncateDate(time.Now().UTC())
	}
	date, err := timetable.ParseDate(self.Routing.Date)
	if err != nil {
		panic("routing date not validated")
	}
	return date
}

func (self *Config) DepartAfter() timetable.TimeOfDay {
	t, err := timetable.ParseTimeOfDay(self.Routing.DepartAfter)
	if err != nil {
		panic("depart-after not validated")
	}
	return t
}

//**********************************************************
// enums
//**********************************************************

func LogLevelFromString(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.New("unknown log level")
	}
}
