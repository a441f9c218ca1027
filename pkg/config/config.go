// Package config loads the YAML configuration shared by the CLI and the
// HTTP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"tilt_maze/pkg/logging"
)

var ErrInvalid = errors.New("config: invalid value")

// Config is the root of the YAML document.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Solver SolverConfig `yaml:"solver"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxConcurrent  int           `yaml:"max_concurrent"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
	CORSOrigin     string        `yaml:"cors_origin"`
}

// SolverConfig bounds the work done per maze.
type SolverConfig struct {
	// MaxCells rejects larger mazes before building the graph. Zero disables the check.
	MaxCells int `yaml:"max_cells"`
	// Timeout bounds one search when the caller has no deadline of its own.
	Timeout time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			RequestTimeout: 5 * time.Second,
			MaxConcurrent:  runtime.NumCPU() * 2,
			MaxBodyBytes:   1 << 20,
		},
		Solver: SolverConfig{
			MaxCells: 250_000,
			Timeout:  30 * time.Second,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Server.Addr == "":
		return fmt.Errorf("%w: server.addr is empty", ErrInvalid)
	case c.Server.MaxConcurrent <= 0:
		return fmt.Errorf("%w: server.max_concurrent must be positive", ErrInvalid)
	case c.Server.RequestTimeout <= 0:
		return fmt.Errorf("%w: server.request_timeout must be positive", ErrInvalid)
	case c.Server.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: server.max_body_bytes must be positive", ErrInvalid)
	case c.Solver.MaxCells < 0:
		return fmt.Errorf("%w: solver.max_cells is negative", ErrInvalid)
	case c.Solver.Timeout < 0:
		return fmt.Errorf("%w: solver.timeout is negative", ErrInvalid)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	return nil
}
