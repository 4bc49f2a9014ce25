// Package config loads haiku settings from a YAML file, environment
// variables and defaults, in increasing order of precedence: defaults, file,
// environment. Command-line flags are applied on top by the commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	haiku "github.com/Joebasaurus/haiku-generator"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the haiku commands and server.
type Config struct {
	// Lexicon is the path of the lexicon file.
	Lexicon string `yaml:"lexicon"`
	// Addr is the server listen address.
	Addr string `yaml:"addr"`
	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// MaxAttempts caps the whole-poem attempts per generation.
	MaxAttempts int `yaml:"max_attempts"`
	// Jitter bounds the random perturbation of edge weights.
	Jitter float64 `yaml:"jitter"`
	// Seed makes generation reproducible when non-zero.
	Seed uint64 `yaml:"seed"`
	// Watch reloads the lexicon when its file changes.
	Watch bool `yaml:"watch"`
	// CORSOrigins lists the origins allowed to call the API. Empty allows
	// any origin.
	CORSOrigins []string `yaml:"cors_origins"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Lexicon:     "dictionary.txt",
		Addr:        ":8080",
		LogLevel:    "info",
		MaxAttempts: haiku.DefaultMaxAttempts,
		Jitter:      haiku.DefaultJitter,
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped
// when path is empty) and then with HAIKU_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Lexicon = getEnv("HAIKU_LEXICON", c.Lexicon)
	c.Addr = getEnv("HAIKU_ADDR", c.Addr)
	c.LogLevel = getEnv("HAIKU_LOG_LEVEL", c.LogLevel)

	if v := os.Getenv("HAIKU_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HAIKU_MAX_ATTEMPTS: %w", err)
		}
		c.MaxAttempts = n
	}
	if v := os.Getenv("HAIKU_WATCH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("HAIKU_WATCH: %w", err)
		}
		c.Watch = b
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Lexicon == "":
		return errors.New("config: lexicon path is empty")
	case c.Addr == "":
		return errors.New("config: listen address is empty")
	case c.MaxAttempts < 1:
		return fmt.Errorf("config: max_attempts must be positive, got %d", c.MaxAttempts)
	case c.Jitter < 0:
		return fmt.Errorf("config: jitter must not be negative, got %g", c.Jitter)
	}
	return nil
}

// GeneratorOptions returns the generator options the configuration
// implies. A non-zero Seed yields a seeded source, which must not be shared
// between goroutines.
func (c *Config) GeneratorOptions() []haiku.Option {
	opts := []haiku.Option{
		haiku.WithMaxAttempts(c.MaxAttempts),
		haiku.WithJitter(c.Jitter),
	}
	if c.Seed != 0 {
		opts = append(opts, haiku.WithRand(haiku.NewRand(c.Seed)))
	}
	return opts
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
