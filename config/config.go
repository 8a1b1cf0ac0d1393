// Package config loads the settings of a partwright session from .env files
// and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// The environment variables the configuration is read from.
const (
	EnvPluginDir   = "PARTWRIGHT_PLUGIN_DIR"
	EnvDesignRules = "PARTWRIGHT_DESIGN_RULES"
	EnvWorkers     = "PARTWRIGHT_WORKERS"
	EnvLogLevel    = "PARTWRIGHT_LOG_LEVEL"
	EnvMonitorPort = "PARTWRIGHT_MONITOR_PORT"
	EnvRecord      = "PARTWRIGHT_RECORD"
)

// Config holds the settings of a session. Zero values mean defaults.
type Config struct {
	// PluginDir is where plugins are discovered. Empty means
	// ComponentPlugins under the working directory.
	PluginDir string

	// DesignRules is the path of the design rules database. Empty means no
	// design rules.
	DesignRules string

	// Workers is the number of scheduler workers. Zero means one per CPU,
	// but never fewer than MinWorkers. A recompute waits on its stages from
	// inside a worker, so a single worker cannot make progress.
	Workers int

	// LogLevel is one of debug, info, warn and error.
	LogLevel string

	// MonitorPort is the port of the monitoring server. Zero means random.
	MonitorPort int

	// Record is the path of the recording database. Empty disables
	// recording.
	Record string
}

// MinWorkers is the smallest worker count a recompute can run on.
const MinWorkers = 2

// NumWorkers returns the worker count the scheduler should be built with.
func (c Config) NumWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}

	return max(MinWorkers, runtime.GOMAXPROCS(0))
}

// Load reads the given .env files, or .env when none is given, and then the
// environment. Variables already set in the environment are not overridden
// by the files. A missing default .env file is not an error.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("loading %s: %w",
			strings.Join(envFiles, ", "), err)
	}

	return FromEnv()
}

// FromEnv reads the configuration from the environment only.
func FromEnv() (Config, error) {
	c := Config{
		PluginDir:   os.Getenv(EnvPluginDir),
		DesignRules: os.Getenv(EnvDesignRules),
		LogLevel:    os.Getenv(EnvLogLevel),
		Record:      os.Getenv(EnvRecord),
	}

	var err error

	c.Workers, err = intFromEnv(EnvWorkers)
	if err != nil {
		return Config{}, err
	}

	c.MonitorPort, err = intFromEnv(EnvMonitorPort)
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

func intFromEnv(name string) (int, error) {
	s := strings.TrimSpace(os.Getenv(name))
	if s == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", name, s)
	}

	return v, nil
}
