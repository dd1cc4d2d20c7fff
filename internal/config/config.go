package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"
	"github.com/inoxlang/seqstore/internal/nativemem"
	"github.com/rs/zerolog"
)

const (
	APP_NAME = "seqstore"

	CONFIG_FILE_NAME    = "config.yaml"
	CONFIG_FILE_RELPATH = APP_NAME + "/" + CONFIG_FILE_NAME

	ARENA_SIZE_ENV_VARNAME = "SEQSTORE_ARENA_SIZE"
	NO_MMAP_ENV_VARNAME    = "SEQSTORE_NO_MMAP"
	LOG_LEVEL_ENV_VARNAME  = "SEQSTORE_LOG_LEVEL"

	DEFAULT_LOG_LEVEL = "warn"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

type Config struct {
	// maximum number of bytes allocated in native memory.
	ArenaSize int64 `yaml:"arena-size" json:"arenaSize"`

	// if true native buffers are mapped outside the Go heap.
	UseMmap bool `yaml:"use-mmap" json:"useMmap"`

	LogLevel string `yaml:"log-level" json:"logLevel"`
}

func Default() Config {
	return Config{
		ArenaSize: nativemem.DEFAULT_MAX_ARENA_SIZE,
		UseMmap:   true,
		LogLevel:  DEFAULT_LOG_LEVEL,
	}
}

// Load reads the configuration file in the XDG config directories (if it exists) and applies
// the environment overrides.
func Load() (Config, error) {
	config := Default()

	path, err := xdg.SearchConfigFile(CONFIG_FILE_RELPATH)
	if err == nil {
		content, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		config, err = Parse(content)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := config.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Parse parses a YAML configuration, missing fields have their default value.
func Parse(content []byte) (Config, error) {
	config := Default()
	if err := yaml.UnmarshalWithOptions(content, &config, yaml.Strict()); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.ArenaSize <= 0 {
		return fmt.Errorf("%w: arena size should be positive", ErrInvalidConfig)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if s, ok := lookup(ARENA_SIZE_ENV_VARNAME); ok {
		size, err := strconv.ParseInt(s, 10, 64)
		if err != nil || size <= 0 {
			return fmt.Errorf("%w: %s should be a positive integer", ErrInvalidConfig, ARENA_SIZE_ENV_VARNAME)
		}
		c.ArenaSize = size
	}

	if s, ok := lookup(NO_MMAP_ENV_VARNAME); ok {
		c.UseMmap = len(s) == 0 || s == "false" || s == "0"
	}

	if s, ok := lookup(LOG_LEVEL_ENV_VARNAME); ok {
		c.LogLevel = strings.ToLower(s)
	}

	return c.Validate()
}

// NewLogger returns a logger writing to w at the configured level.
func (c Config) NewLogger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func (c Config) ArenaConfig(logger zerolog.Logger) nativemem.ArenaConfig {
	return nativemem.ArenaConfig{
		MaxSize: c.ArenaSize,
		UseMmap: c.UseMmap,
		Logger:  logger,
	}
}
