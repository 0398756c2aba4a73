// Package config reads BARCUT_* environment overrides, optionally seeded
// from a .env file, and layers them onto the optimiser settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/piwi3910/barcut/internal/model"
)

// DefaultEnvFile is the dotenv file read from the working directory.
const DefaultEnvFile = ".env"

// Env holds the environment overrides. Unset variables stay nil so they
// never clobber values from the config file.
type Env struct {
	MasterLength  *float64       `env:"BARCUT_MASTER_LENGTH"`
	ExactEnabled  *bool          `env:"BARCUT_EXACT"`
	ExactTimeout  *time.Duration `env:"BARCUT_EXACT_TIMEOUT"`
	ExactMaxItems *int           `env:"BARCUT_EXACT_MAX_ITEMS"`
	Workers       *int           `env:"BARCUT_WORKERS"`
	MinOffcut     *float64       `env:"BARCUT_MIN_OFFCUT"`
	LogLevel      string         `env:"BARCUT_LOG_LEVEL"`
	ConfigPath    string         `env:"BARCUT_CONFIG"`
}

// Load reads the dotenv file at path into the process environment, if it
// exists, and then parses the BARCUT_* variables. Variables already set in
// the environment win over the file.
func Load(path string) (Env, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("load %s: %w", path, err)
		}
	}
	return Parse(nil)
}

// Parse reads the overrides from environ, or from the process environment
// when environ is nil.
func Parse(environ map[string]string) (Env, error) {
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	cfg, err := env.ParseAsWithOptions[Env](opts)
	if err != nil {
		return Env{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, validate(cfg)
}

func validate(e Env) error {
	var errs []error
	if e.MasterLength != nil && *e.MasterLength <= 0 {
		errs = append(errs, fmt.Errorf("BARCUT_MASTER_LENGTH must be positive, got %v", *e.MasterLength))
	}
	if e.ExactTimeout != nil && *e.ExactTimeout <= 0 {
		errs = append(errs, fmt.Errorf("BARCUT_EXACT_TIMEOUT must be positive, got %s", *e.ExactTimeout))
	}
	if e.ExactMaxItems != nil && *e.ExactMaxItems < 0 {
		errs = append(errs, fmt.Errorf("BARCUT_EXACT_MAX_ITEMS must not be negative, got %d", *e.ExactMaxItems))
	}
	if e.Workers != nil && *e.Workers < 1 {
		errs = append(errs, fmt.Errorf("BARCUT_WORKERS must be at least 1, got %d", *e.Workers))
	}
	return errors.Join(errs...)
}

// Apply copies every set override into s.
func (e Env) Apply(s *model.Settings) {
	if e.MasterLength != nil {
		s.MasterLength = *e.MasterLength
	}
	if e.ExactEnabled != nil {
		s.ExactEnabled = *e.ExactEnabled
	}
	if e.ExactTimeout != nil {
		s.ExactTimeLimit = *e.ExactTimeout
	}
	if e.ExactMaxItems != nil {
		s.ExactMaxItems = *e.ExactMaxItems
	}
	if e.Workers != nil {
		s.Workers = *e.Workers
	}
	if e.MinOffcut != nil {
		s.MinReusableOffcut = *e.MinOffcut
	}
}
