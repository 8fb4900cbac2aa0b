// Package config resolves the store settings from .notes.yaml, .env and the
// environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the optional per-directory configuration file.
	FileName = ".notes.yaml"
	// EnvFileName is loaded from the same directory as the configuration.
	EnvFileName = ".env"

	DefaultStoreFile   = "notes.json"
	DefaultLockTimeout = 5 * time.Second
)

// Environment variables that override the configuration file.
const (
	EnvFile        = "NOTES_FILE"
	EnvAdapter     = "NOTES_ADAPTER"
	EnvStrict      = "NOTES_STRICT"
	EnvLock        = "NOTES_LOCK"
	EnvLockTimeout = "NOTES_LOCK_TIMEOUT"
	EnvReadOnly    = "NOTES_READ_ONLY"
)

// Config represents the store configuration.
type Config struct {
	File        string        `yaml:"file"`         // store path; relative paths are resolved against Dir
	Adapter     string        `yaml:"adapter"`      // "fs", "sqlite" or empty for detection by extension
	Strict      bool          `yaml:"strict"`       // report corrupt stores instead of treating them as empty
	Lock        bool          `yaml:"lock"`         // guard add/remove with a lock file
	LockTimeout time.Duration `yaml:"lock_timeout"` // e.g. "5s"
	ReadOnly    bool          `yaml:"read_only"`

	// Dir is the directory relative paths are resolved against: the directory
	// holding .notes.yaml, or the start directory when none was found.
	Dir string `yaml:"-"`
	// Source is the path of the configuration file that was read, if any.
	Source string `yaml:"-"`
}

// Default returns the configuration used when nothing is set.
func Default(dir string) Config {
	return Config{
		File:        DefaultStoreFile,
		LockTimeout: DefaultLockTimeout,
		Dir:         dir,
	}
}

// Load builds the configuration for startDir: defaults, then the nearest
// .notes.yaml in startDir or a parent, then .env next to it, then the
// process environment.
func Load(startDir string) (Config, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return Config{}, err
	}

	cfg := Default(abs)
	if path, err := Find(abs); err == nil {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	} else if !errors.Is(err, ErrNotFound) {
		return Config{}, err
	}

	// A missing .env is normal; only malformed ones are reported.
	envPath := filepath.Join(cfg.Dir, EnvFileName)
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			return Config{}, fmt.Errorf("loading %s: %w", envPath, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	c.Dir = filepath.Dir(path)
	c.Source = path
	return nil
}

// ApplyEnv overrides fields from environment variables using lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvFile); ok && v != "" {
		c.File = v
	}
	if v, ok := lookup(EnvAdapter); ok && v != "" {
		c.Adapter = v
	}
	for name, field := range map[string]*bool{
		EnvStrict:   &c.Strict,
		EnvLock:     &c.Lock,
		EnvReadOnly: &c.ReadOnly,
	} {
		v, ok := lookup(name)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", name, v, err)
		}
		*field = b
	}
	if v, ok := lookup(EnvLockTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", EnvLockTimeout, v, err)
		}
		c.LockTimeout = d
	}
	return nil
}

// StorePath returns the store file path, resolved against Dir when relative.
func (c Config) StorePath() string {
	if c.File == "" {
		return filepath.Join(c.Dir, DefaultStoreFile)
	}
	if filepath.IsAbs(c.File) {
		return c.File
	}
	return filepath.Join(c.Dir, c.File)
}
