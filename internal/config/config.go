// Package config handles loading and parsing application configuration.
// It supports two sources for the file path (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Every value can also be overridden by its own environment variable.
package config

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage drivers.
const (
	DriverText   = "text"
	DriverSQLite = "sqlite"
)

// Config is the root configuration structure.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	Storage `yaml:"storage"`
}

// Storage selects where the registrar is persisted.
type Storage struct {
	// Driver is "text" (two line-oriented files) or "sqlite".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"text"`

	CoursesPath  string `yaml:"courses_path" env:"COURSES_PATH" env-default:"courses.txt"`
	StudentsPath string `yaml:"students_path" env:"STUDENTS_PATH" env-default:"students.txt"`
	SQLitePath   string `yaml:"sqlite_path" env:"SQLITE_PATH" env-default:"registrar.db"`
}

// Load reads the config file at path and applies environment overrides.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FromEnv builds the config from environment variables and defaults only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Driver {
	case DriverText, DriverSQLite:
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", c.Driver)
	}
}

// MustLoad returns the application config or exits.
//
// The config file is optional here: with neither CONFIG_PATH nor --config
// set, the defaults (text files in the working directory) are used, so the
// registrar runs out of the box.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	var (
		cfg *Config
		err error
	)
	if configPath == "" {
		cfg, err = FromEnv()
	} else {
		cfg, err = Load(configPath)
	}
	if err != nil {
		log.Fatalf("cannot load config: %s", err.Error())
	}

	return cfg
}
