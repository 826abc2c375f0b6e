package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/alexiusacademia/goframe/internal/errors"
	"github.com/alexiusacademia/goframe/internal/logging"
	"github.com/alexiusacademia/goframe/internal/numeric"
)

// Environment variables read by Load.
const (
	EnvLogLevel = "GOFRAME_LOG_LEVEL"
	EnvTolAbs   = "GOFRAME_TOL_ABS"
	EnvTolRel   = "GOFRAME_TOL_REL"
	EnvWorkers  = "GOFRAME_WORKERS"
	EnvDecimals = "GOFRAME_DECIMALS"
)

// Config represents the runtime settings of the command line tool
type Config struct {
	LogLevel  logging.Level
	Tolerance numeric.Tolerance
	Workers   int // 0 means one per CPU
	Decimals  int // digits printed after the decimal point
}

// Default returns the settings used when nothing is configured
func Default() *Config {
	return &Config{
		LogLevel:  logging.LevelWarn,
		Tolerance: numeric.DefaultTolerance,
		Decimals:  3,
	}
}

// Load reads the configuration from the environment. When envFile is set it
// must exist; otherwise a .env file in the working directory is used if
// present. A .env that exists but cannot be read or parsed is an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, errors.WithCode(err, errors.CodeConfig, "failed to load "+envFile)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.WithCode(err, errors.CodeConfig, "failed to load .env")
	}
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only
func FromEnv() (*Config, error) {
	cfg := Default()

	if v := os.Getenv(EnvLogLevel); v != "" {
		level, ok := logging.ParseLevel(v)
		if !ok {
			return nil, errors.Newf(errors.CodeConfig, "%s: unknown level %q", EnvLogLevel, v)
		}
		cfg.LogLevel = level
	}

	var err error
	if cfg.Tolerance.Abs, err = getEnvPositiveFloat(EnvTolAbs, cfg.Tolerance.Abs); err != nil {
		return nil, err
	}
	if cfg.Tolerance.Rel, err = getEnvPositiveFloat(EnvTolRel, cfg.Tolerance.Rel); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getEnvIntInRange(EnvWorkers, cfg.Workers, 0, 1024); err != nil {
		return nil, err
	}
	if cfg.Decimals, err = getEnvIntInRange(EnvDecimals, cfg.Decimals, 0, 15); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Apply installs the tolerance as the process-wide default
func (c *Config) Apply() {
	numeric.SetDefault(c.Tolerance)
}

func getEnvPositiveFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || !(f > 0) || f > 1 {
		return 0, errors.Newf(errors.CodeConfig, "%s: expected a number in (0, 1], got %q", key, value)
	}
	return f, nil
}

func getEnvIntInRange(key string, defaultValue, lo, hi int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < lo || n > hi {
		return 0, errors.Newf(errors.CodeConfig, "%s: expected an integer in [%d, %d], got %q", key, lo, hi, value)
	}
	return n, nil
}
