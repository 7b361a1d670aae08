// Package config loads server settings from defaults, an optional TOML or
// YAML file and the environment, in that order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultAddr        = ":8000"
	DefaultDatabaseURL = "sledilnik.sqlite3"
	DefaultLogLevel    = "info"
)

// Config holds server settings.
type Config struct {
	Addr         string   `toml:"addr" yaml:"addr"`
	DatabaseURL  string   `toml:"database_url" yaml:"database_url"`
	DatabaseName string   `toml:"database_name" yaml:"database_name"`
	LogLevel     string   `toml:"log_level" yaml:"log_level"`
	LogFile      string   `toml:"log_file" yaml:"log_file"`
	CORSOrigins  []string `toml:"cors_origins" yaml:"cors_origins"`

	// DatabaseURLSet and DatabaseNameSet record whether the values came from
	// the file or environment rather than defaults.
	DatabaseURLSet  bool `toml:"-" yaml:"-"`
	DatabaseNameSet bool `toml:"-" yaml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Addr:        DefaultAddr,
		DatabaseURL: DefaultDatabaseURL,
		LogLevel:    DefaultLogLevel,
		CORSOrigins: []string{"*"},
	}
}

// Load builds the configuration. path may be empty; getenv is usually os.Getenv.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		cfg.merge(fileCfg)
	}

	cfg.applyEnv(getenv)
	return cfg, nil
}

// ReadFile parses a .toml, .yaml or .yml file.
func ReadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parsing TOML config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing YAML config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	return &cfg, nil
}

// merge copies every non-zero field of other into c.
func (c *Config) merge(other *Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.DatabaseURL != "" {
		c.DatabaseURL = other.DatabaseURL
		c.DatabaseURLSet = true
	}
	if other.DatabaseName != "" {
		c.DatabaseName = other.DatabaseName
		c.DatabaseNameSet = true
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFile != "" {
		c.LogFile = other.LogFile
	}
	if other.CORSOrigins != nil {
		c.CORSOrigins = other.CORSOrigins
	}
}

func (c *Config) applyEnv(getenv func(string) string) {
	var env Config
	env.DatabaseURL = getenv("DATABASE_URL")
	env.DatabaseName = getenv("DATABASE_NAME")
	env.LogLevel = getenv("LOG_LEVEL")
	env.LogFile = getenv("LOG_FILE")
	if port := getenv("PORT"); port != "" {
		env.Addr = ":" + port
	}
	if origins := getenv("CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}
	c.merge(&env)
}
