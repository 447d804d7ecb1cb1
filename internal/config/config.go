// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package config holds the settings of the aggip command.
//
// Settings are layered, later layers win:
//
//	defaults < config file (YAML) < environment < env file < flags
//
// The flags layer is applied by the command itself.
package config

import (
	"bytes"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of all environment variables.
const EnvPrefix = "AGGIP_"

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// ValidLogLevels defines the allowed log levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Config is the command configuration.
type Config struct {
	Format      string `yaml:"format"`
	LogLevel    string `yaml:"log_level"`
	Workers     int    `yaml:"workers"`
	SkipInvalid bool   `yaml:"skip_invalid"`
	MetricsFile string `yaml:"metrics_file"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Format:   "text",
		LogLevel: "info",
	}
}

// Load returns the defaults overlaid with the YAML file at path.
// An empty path returns the defaults. Unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}

	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)

	// a file without documents, empty or only comments, decodes
	// to io.EOF, keep the defaults
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// ReadEnvFile reads KEY=VALUE pairs from a dotenv file without touching
// the process environment.
func ReadEnvFile(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read env file %s", path)
	}
	return env, nil
}

// Environ returns the process environment as a map.
func Environ() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// ApplyEnv overlays the AGGIP_* variables of env.
func (c *Config) ApplyEnv(env map[string]string) error {
	if v, ok := env[EnvPrefix+"FORMAT"]; ok {
		c.Format = v
	}
	if v, ok := env[EnvPrefix+"LOG_LEVEL"]; ok {
		c.LogLevel = v
	}
	if v, ok := env[EnvPrefix+"METRICS_FILE"]; ok {
		c.MetricsFile = v
	}

	if v, ok := env[EnvPrefix+"WORKERS"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "%sWORKERS", EnvPrefix)
		}
		c.Workers = n
	}

	if v, ok := env[EnvPrefix+"SKIP_INVALID"]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "%sSKIP_INVALID", EnvPrefix)
		}
		c.SkipInvalid = b
	}

	return nil
}

// Validate checks the settings.
func (c Config) Validate() error {
	if !slices.Contains(ValidFormats, c.Format) {
		return errors.Errorf("invalid format %q: must be one of %v", c.Format, ValidFormats)
	}
	if !slices.Contains(ValidLogLevels, c.LogLevel) {
		return errors.Errorf("invalid log level %q: must be one of %v", c.LogLevel, ValidLogLevels)
	}
	if c.Workers < 0 {
		return errors.Errorf("invalid workers %d: must not be negative", c.Workers)
	}
	return nil
}
