// Package config handles loading and parsing application configuration.
// It supports three sources (in priority order):
//  1. A command-line flag:      --config=/path/to/config.yaml
//  2. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  3. No file at all: values come from the environment and the
//     env-default tags below.
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"prod"`

	// StoragePath is the backing file: a .json/.yaml file for the file
	// backend, or the SQLite .db file for the sqlite backend.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"students_data.json" validate:"required"`

	// StorageBackend selects the Storage implementation.
	StorageBackend string `yaml:"storage_backend" env:"STORAGE_BACKEND" env-default:"file" validate:"oneof=file sqlite"`
}

// Load reads the configuration. path may be empty; see the package doc for
// how the file is located.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	} else {
		// Verify the file exists before trying to read it, so the message
		// names the path instead of a bare "no such file".
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: file does not exist: %s", path)
		}
		// cleanenv.ReadConfig reads the YAML file, then applies env:"..."
		// overrides and env-default values.
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: invalid: %w", err)
	}

	return &cfg, nil
}
